package main

import (
	"flag"

	tickerapp "github.com/edward-ap/miniticker/internal/tickerapp"
)

func main() {
	trace := flag.Bool("traceLog", false, "log every ticker state change")
	flag.Parse()
	tickerapp.SetTraceLogEnabled(*trace)

	app := tickerapp.NewApp()
	app.Run()
}
