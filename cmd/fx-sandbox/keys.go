package main

import (
	"github.com/gdamore/tcell/v2"
)

// command is a sandbox action bound to a key
type command uint8

const (
	cmdNone command = iota
	cmdQuit
	cmdMoveLeft
	cmdMoveRight
	cmdMoveUp
	cmdMoveDown
	cmdBasicAttack
	cmdSpecialAttack
	cmdImpact
	cmdPause
	cmdMute
)

// keyCommand maps a key press to its command
func keyCommand(ev *tcell.EventKey) command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmdQuit
	case tcell.KeyLeft:
		return cmdMoveLeft
	case tcell.KeyRight:
		return cmdMoveRight
	case tcell.KeyUp:
		return cmdMoveUp
	case tcell.KeyDown:
		return cmdMoveDown
	case tcell.KeyRune:
	default:
		return cmdNone
	}

	switch ev.Rune() {
	case 'q':
		return cmdQuit
	case 'h':
		return cmdMoveLeft
	case 'l':
		return cmdMoveRight
	case 'k':
		return cmdMoveUp
	case 'j':
		return cmdMoveDown
	case 'a', ' ':
		return cmdBasicAttack
	case 's':
		return cmdSpecialAttack
	case 'd':
		return cmdImpact
	case 'p':
		return cmdPause
	case 'm':
		return cmdMute
	default:
		return cmdNone
	}
}

// moveDelta returns the screen-space step of a move command
func moveDelta(c command) (dx, dy int, ok bool) {
	switch c {
	case cmdMoveLeft:
		return -1, 0, true
	case cmdMoveRight:
		return 1, 0, true
	case cmdMoveUp:
		return 0, -1, true
	case cmdMoveDown:
		return 0, 1, true
	default:
		return 0, 0, false
	}
}
