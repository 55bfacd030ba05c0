package data

import _ "embed"

// InstructorsJSON is the bundled instructor directory
//
//go:embed instructors.json
var InstructorsJSON []byte
