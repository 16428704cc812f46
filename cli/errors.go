package cli

import (
	"errors"

	"github.com/MakeNowJust/heredoc"
)

var (
	ErrConfigNotFound = errors.New(heredoc.Doc(`
	Config file not found. Loading from defaults...

	Run "scout config init" to initialize a new configuration file
	Run "scout help environment" for more information.

	Alternatively, make a "scout.yaml" file in the current directory from the example given
`))
)
