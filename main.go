package main

import "github.com/docqa/docchat/cmd"

func main() {
	cmd.Execute()
}
