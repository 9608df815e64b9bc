package main

import "github.com/josephlewis42/start/cmd"

func main() {
	cmd.Execute()
}
