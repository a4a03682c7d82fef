package main

import "errors"

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAborted         = errors.New("aborted")
)
