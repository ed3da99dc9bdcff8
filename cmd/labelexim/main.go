package main

import "labelexim/internal/cmd"

func main() {
	cmd.Execute()
}
