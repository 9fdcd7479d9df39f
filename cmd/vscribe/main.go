package main

import (
	"voicescribe/cmd/vscribe/cmd"
)

func main() {
	cmd.Execute()
}
