package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/cyberchai/ChessBot/internal/accuracy"
	. "github.com/cyberchai/ChessBot/internal/helpers"
	"github.com/cyberchai/ChessBot/internal/runner"
	"github.com/cyberchai/ChessBot/internal/search"
)

func usage() {
	fmt.Println("usage:")
	fmt.Println(" > bench [profile] [oracle=dragon|notnil] [movetime=<ms>] [<file.epd>] [search options...]")
	fmt.Println(" > bench options")
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
		}
	}()

	args := os.Args[1:]
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h") {
		usage()
		return
	}
	if len(args) > 0 && args[0] == "options" {
		for _, option := range search.AllSearchOptions {
			fmt.Println(option)
		}
		return
	}

	if Contains(args, "profile") {
		p := profile.Start(profile.ProfilePath(RootDir() + "/data/CmdBenchMain"))
		defer p.Stop()
	}

	oracleName := runner.DragonOracle
	epds := accuracy.DefaultSuite
	params := runner.SearchParams{}

	searchArgs := []string{}
	for _, arg := range args {
		switch {
		case arg == "profile":
		case strings.HasPrefix(arg, "oracle="):
			oracleName = strings.TrimPrefix(arg, "oracle=")
		case strings.HasPrefix(arg, "movetime="):
			ms, err := time.ParseDuration(strings.TrimPrefix(arg, "movetime=") + "ms")
			if err != nil {
				panic(Wrap(err))
			}
			params.Duration = Some(ms)
		case strings.HasSuffix(arg, ".epd"):
			loaded, err := accuracy.LoadEpd(arg)
			if err.HasError() {
				panic(err)
			}
			epds = loaded
		default:
			searchArgs = append(searchArgs, arg)
		}
	}

	searchOptions, err := search.OptionsFromArgs(searchArgs...)
	if err.HasError() {
		panic(err)
	}

	r, err := runner.New(oracleName, runner.WithSearchOptions(searchOptions))
	if err.HasError() {
		panic(err)
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	var bar *progressbar.ProgressBar
	if interactive {
		bar = progressbar.Default(int64(len(epds)), fmt.Sprint("depth ", searchOptions.Depth))
	}

	results := []accuracy.EpdResult{}
	failures := []string{}
	for _, epd := range epds {
		result, err := accuracy.SearchEpd(context.Background(), r, epd, params)
		if err.HasError() {
			failures = append(failures, fmt.Sprintf("%v: %v", epd, err))
		} else {
			results = append(results, result)
		}

		if bar != nil {
			_ = bar.Add(1)
		} else if err.HasError() {
			fmt.Println("error", epd, err)
		} else {
			fmt.Printf("%-40s %-6s %-8s %v nodes in %v\n",
				result.Id, result.Move, result.Score, humanize.Comma(int64(result.Nodes)), result.Duration)
		}
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Println()
	}

	solved := 0
	nodes := 0
	elapsed := time.Duration(0)
	for _, result := range results {
		if result.Success {
			solved++
		}
		nodes += result.Nodes
		elapsed += result.Duration
	}

	nodesPerSecond := 0
	if elapsed > 0 {
		nodesPerSecond = int(float64(nodes) / elapsed.Seconds())
	}

	fmt.Printf("oracle %v, %v\n", oracleName, searchOptions)
	fmt.Printf("solved %v / %v\n", solved, len(epds))
	fmt.Printf("%v nodes in %v (%v nodes/s)\n",
		humanize.Comma(int64(nodes)), elapsed.Round(time.Millisecond), humanize.Comma(int64(nodesPerSecond)))
	for _, failure := range failures {
		fmt.Fprintln(os.Stderr, "error:", failure)
	}
}
