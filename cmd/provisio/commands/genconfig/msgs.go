package genconfig

const (
	MsgShort = "Print or write the configuration file"
	MsgLong  = `Print the effective configuration as TOML, after every layer has been
applied. With --template the commented built-in defaults are printed
instead, ready to be edited.

With --write the output goes to the user configuration file rather than
stdout. An existing file is left alone unless --force is given.`
	MsgExample = `  provisio genconfig                    # Effective configuration
  provisio genconfig --template         # Commented defaults
  provisio genconfig --template -w      # Start a user config file`

	MsgFlagWrite    = "Write to the user configuration file instead of stdout"
	MsgFlagTemplate = "Print the commented defaults instead of the effective configuration"
	MsgFlagForce    = "Overwrite an existing configuration file"
	MsgWritten      = "Wrote %s\n"
)
