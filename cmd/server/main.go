package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"

	. "github.com/cyberchai/ChessBot/internal/helpers"
	"github.com/cyberchai/ChessBot/internal/search"
	"github.com/cyberchai/ChessBot/internal/server"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
		}
	}()

	port := 8002

	args := []string{}
	for _, arg := range os.Args[1:] {
		if parsed, err := strconv.ParseInt(arg, 10, 64); err == nil {
			port = int(parsed)
		} else {
			args = append(args, arg)
		}
	}

	searchOptions, err := search.OptionsFromArgs(args...)
	if !IsNil(err) {
		panic(err)
	}

	s := server.NewServer(&DefaultLogger, searchOptions)

	log.Println("serving at", port)
	err = Wrap(http.ListenAndServe(fmt.Sprintf(":%v", port), s.Router()))
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
