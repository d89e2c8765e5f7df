package provisio

import "embed"

// TopicsFS holds the help topics shown by "provisio help <topic>"
//
//go:embed topics
var TopicsFS embed.FS
