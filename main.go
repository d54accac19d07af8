package main

import "github.com/notare/notare/cmd"

func main() {
	cmd.Execute()
}
