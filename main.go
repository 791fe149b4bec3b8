package main

import "github.com/ngld/knossos/packages/galconf/cmd"

func main() {
	cmd.Execute()
}
