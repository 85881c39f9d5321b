package main

import "github.com/aidevhq/cli/cmd"

func main() {
	cmd.Execute()
}
