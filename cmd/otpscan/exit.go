package main

import "os"

// osExit is replaced in tests.
var osExit = os.Exit

// Exit codes.
const (
	exitOK     = 0
	exitError  = 1
	exitNotOTP = 2 // the input was read but holds no OTP credential
)
