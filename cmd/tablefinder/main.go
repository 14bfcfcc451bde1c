package main

import "github.com/example/tablefinder/cmd"

func main() {
	cmd.Execute()
}
