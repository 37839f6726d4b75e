package main

import "sdkgen/cmd"

func main() {
	cmd.Execute()
}
