package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

const helpText = `Available commands:
  connect <german|us>     connect the VPN and map its drives (background)
  disconnect              disconnect the VPN (background)
  map <profile>           remap the drives of a profile (background)
  status                  connection, client process and mapped drives
  creds <profile>         show saved credentials
  setcreds <profile>      enter and save credentials
  clearcreds <profile>    forget saved credentials
  folders <profile>       list folder mappings
  addfolder <profile>     add a folder mapping
  servers                 list custom servers
  addserver               add a custom server
  delserver [description] delete custom servers by description
  rdp <german|us>         open the remote desktop portal
  ls [path], cd <path>    browse files
  home, docs              jump to the home or Documents folder
  exit | quit             leave the program`

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Connect(ctx context.Context, args []string) error
	Disconnect(ctx context.Context, args []string) error
	Map(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	Creds(ctx context.Context, args []string) error
	SetCreds(ctx context.Context, args []string) error
	ClearCreds(ctx context.Context, args []string) error
	Folders(ctx context.Context, args []string) error
	AddFolder(ctx context.Context, args []string) error
	Servers(ctx context.Context, args []string) error
	AddServer(ctx context.Context, args []string) error
	DelServer(ctx context.Context, args []string) error
	RDP(ctx context.Context, args []string) error
	Ls(ctx context.Context, args []string) error
	Cd(ctx context.Context, args []string) error
	Home(ctx context.Context, args []string) error
	Docs(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the vpnkeeper CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// Unknown commands are reported back to the user. The loop exits on EOF,
// when ctx is done, or when the user types "exit" or "quit".
//
// The prompt shows the current status (from statusFn). See helpText for
// the command list.
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("vpn> %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("read error:", err)
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			printlnFn(helpText)

		case "connect":
			_ = a.Connect(ctx, args)

		case "disconnect":
			_ = a.Disconnect(ctx, args)

		case "map":
			_ = a.Map(ctx, args)

		case "status":
			_ = a.Status(ctx, args)

		case "creds":
			_ = a.Creds(ctx, args)

		case "setcreds":
			_ = a.SetCreds(ctx, args)

		case "clearcreds":
			_ = a.ClearCreds(ctx, args)

		case "folders":
			_ = a.Folders(ctx, args)

		case "addfolder":
			_ = a.AddFolder(ctx, args)

		case "servers":
			_ = a.Servers(ctx, args)

		case "addserver":
			_ = a.AddServer(ctx, args)

		case "delserver":
			_ = a.DelServer(ctx, args)

		case "rdp":
			_ = a.RDP(ctx, args)

		case "ls":
			_ = a.Ls(ctx, args)

		case "cd":
			_ = a.Cd(ctx, args)

		case "home":
			_ = a.Home(ctx, args)

		case "docs":
			_ = a.Docs(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
