package main

import "github.com/StinkyLord/rosettabom/cmd"

func main() {
	cmd.Execute()
}
