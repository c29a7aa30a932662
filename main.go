package main

import "github.com/Malcolmdotpeewhy/folderflatten/cmd"

func main() {
	cmd.Execute()
}
