package main

import "github.com/aadilmughal786/one-goal-sub006/internal/cli"

func main() {
	cli.Execute()
}
