package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/profile"

	. "github.com/cyberchai/ChessBot/internal/helpers"
	"github.com/cyberchai/ChessBot/internal/runner"
	"github.com/cyberchai/ChessBot/internal/search"
	"github.com/cyberchai/ChessBot/internal/uci"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "recover()", r)
		}
	}()

	args := os.Args[1:]

	if Contains(args, "profile") {
		profilePath := RootDir() + "/data/CmdUciMain"
		p := profile.Start(profile.ProfilePath(profilePath))
		defer p.Stop()
	}
	args = FilterSlice(args, func(arg string) bool {
		return arg != "profile"
	})

	if len(args) > 0 && args[0] == "options" {
		for _, option := range search.AllSearchOptions {
			fmt.Println(option)
		}
		fmt.Println("oracle=" + strings.Join(runner.AllOracles, "|"))
		return
	}

	oracleName := runner.DragonOracle
	args = FilterSlice(args, func(arg string) bool {
		if strings.HasPrefix(arg, "oracle=") {
			oracleName = strings.TrimPrefix(arg, "oracle=")
			return false
		}
		return true
	})

	searchOptions, err := search.OptionsFromArgs(args...)
	if !IsNil(err) {
		panic(err)
	}

	// stdout belongs to the protocol
	r, err := runner.New(oracleName,
		runner.WithSearchOptions(searchOptions),
		runner.WithLogger(FuncLogger(
			func(s string) {
				fmt.Fprint(os.Stderr, s)
			})),
	)
	if !IsNil(err) {
		panic(err)
	}
	u := uci.NewUciRunner(r)

	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		input := scanner.Text()
		if input == "quit" {
			break
		}
		result, err := u.HandleInput(input)
		if !IsNil(err) {
			fmt.Fprintln(os.Stderr, "error:", err)
			time.Sleep(200 * time.Millisecond)
			break
		}
		for _, v := range result {
			fmt.Println(v)
		}
	}
}
