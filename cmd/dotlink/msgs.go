package main

// User-facing message strings, kept in one place.
const (
	MsgNoUnits          = "no units found under the source directory"
	MsgSnapshotCreated  = "backup snapshot created at %s"
	MsgSomeUnitsFailed  = "some units failed; see output above"
	MsgDoctorFailed     = "diagnostics reported failures"
	MsgNoInstallCommand = "no install command configured for platform %q"
	MsgProfileUpdated   = "updated shell profile: %s"
	MsgTopicsAvailable  = "Available topics:"
)

// MsgUsageTemplate is the cobra usage template, with section headings run
// through the template funcs registered in initTemplateFormatting.
const MsgUsageTemplate = `{{boldUpper "Usage:"}}{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "Aliases:"}}
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{boldUpper "Examples:"}}
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

{{boldUpper "Available Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "Flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "Global Flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{bold .CommandPath}} [command] --help" for more information about a command.{{end}}
`
