package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/otpauth"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/qrcode"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/scanner"
)

// errNotOTP marks input that was read fine but holds no credential. The
// explanation has already been printed when it is returned.
var errNotOTP = errors.New("no OTP credential found")

type app struct {
	cfg    appConfig
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger

	// passphrase prompts for a secret on the terminal.
	passphrase func(prompt string, confirm bool) (string, error)
}

func newApp(cfg appConfig, stdin io.Reader, stdout, stderr io.Writer) *app {
	a := &app{cfg: cfg, stdin: stdin, stdout: stdout, stderr: stderr}
	a.passphrase = a.readPassphrase
	return a
}

// run dispatches args[0] and returns the process exit code.
func (a *app) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		printUsage(a.stderr)
		return exitError
	}

	cmd, rest := args[0], args[1:]
	if a.log == nil {
		a.log = newLogger(a.cfg, a.stderr, cmd != "serve")
	}

	var err error
	switch cmd {
	case "scan":
		err = a.runScan(ctx, rest)
	case "code":
		err = a.runCode(ctx, rest)
	case "export":
		err = a.runExport(ctx, rest)
	case "open":
		err = a.runOpen(ctx, rest)
	case "serve":
		err = a.runServe(ctx, rest)
	case "help", "-h", "--help":
		printUsage(a.stdout)
		return exitOK
	default:
		fmt.Fprintf(a.stderr, "Unknown command: %s\n\n", cmd)
		printUsage(a.stderr)
		return exitError
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errNotOTP):
		return exitNotOTP
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	default:
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitError
	}
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// input returns the text to scan: the QR code in imagePath, the arguments
// joined by spaces, or stdin when args is empty or "-".
func (a *app) input(imagePath string, args []string) (string, error) {
	if imagePath != "" {
		f, err := os.Open(imagePath)
		if err != nil {
			return "", err
		}
		defer f.Close()
		return qrcode.Decode(f)
	}
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}

// scan reads the input and recognizes it. When the input holds no
// credential, the raw text is printed with an explanation and errNotOTP is
// returned.
func (a *app) scan(ctx context.Context, imagePath string, args []string) ([]otpauth.Credential, error) {
	text, err := a.input(imagePath, args)
	if err != nil {
		return nil, err
	}

	s := scanner.New(scanner.WithLogger(a.log))
	creds, err := s.Scan(ctx, text)
	switch {
	case err == nil:
		return creds, nil
	case errors.Is(err, scanner.ErrInvalidPayload):
		return nil, err
	case errors.Is(err, scanner.ErrNotOTP):
		fmt.Fprintln(a.stdout, "This QR code does not hold an OTP credential. Its content is:")
		fmt.Fprintln(a.stdout, strings.TrimSpace(text))
		return nil, errNotOTP
	}
	return nil, err
}

// readPassphrase reads a passphrase without echo when stdin is a terminal,
// or the first line of stdin otherwise.
func (a *app) readPassphrase(prompt string, confirm bool) (string, error) {
	f, ok := a.stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		line, err := bufio.NewReader(a.stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read passphrase: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	read := func(p string) (string, error) {
		fmt.Fprint(a.stderr, p)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read passphrase: %w", err)
		}
		return string(b), nil
	}

	pass, err := read(prompt)
	if err != nil || !confirm {
		return pass, err
	}
	again, err := read("Confirm passphrase: ")
	if err != nil {
		return "", err
	}
	if pass != again {
		return "", errors.New("passphrases do not match")
	}
	return pass, nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
