package main

import "studentdesk/internal/client/cli"

func main() {
	cli.Main()
}
