package main

import "github.com/booksadda/storefront/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
