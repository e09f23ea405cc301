package common

import (
	"os"
)

type RealEnvironment struct{}

func (e *RealEnvironment) Getenv(name string) string { return os.Getenv(name) }
