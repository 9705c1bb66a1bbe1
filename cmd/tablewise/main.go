package main

import "github.com/tablewise/table_reservation_app/cmd"

func main() {
	cmd.Execute()
}
