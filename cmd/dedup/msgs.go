package main

// Short messages (one-liners)
const (
	MsgRootShort = "Find and safely remove duplicate files"
	MsgRootLong = `dedup finds files with identical content under a directory and
resolves each duplicate set by keeping the best copy. Redundant copies
are never destroyed: they are moved to the trash, where they can be
recovered until the trash is emptied.

Files are compared by content fingerprint, so renames and copies are
found regardless of their names or locations.`

	MsgScanShort = "Scan a directory and report duplicate sets"
	MsgScanLong = `Scan walks the directory, fingerprints candidate files and prints a
report of every duplicate set with the copy that would be kept. Nothing
is deleted; use clean for that.`

	MsgCleanShort = "Find duplicates and move redundant copies to the trash"
	MsgCleanLong = `Clean runs the same detection as scan and then moves every redundant
copy to the trash, keeping the newest copy of each set. The run asks
for confirmation first unless --yes is given.

With --dry-run the report shows what would be moved without touching
any file.`

	MsgReportShort = "Write a duplicate report to a file or stdout"
	MsgReportLong = `Report runs duplicate detection and writes the result in a
machine-readable format. Use --output to write to a file instead of
stdout.`

	MsgGenConfigShort = "Generate the default configuration file"
	MsgGenConfigLong = `Output the default configuration as TOML. With -w the file is written
to the user configuration path instead of stdout, ready to edit.`

	MsgDocsShort = "Display documentation topics"
	MsgDocsLong  = "Display a list of documentation topics that go beyond command help, or render one topic."

	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice   = "\nDRY RUN MODE - No files were moved"
	MsgNoDuplicates   = "No duplicates found."
	MsgAbortedNotice  = "Aborted. No files were moved."
	MsgCleanedFormat  = "\nMoved %d file(s) to trash, recovering %s.\n"
	MsgFailuresFormat = "%d file(s) could not be moved:\n"
	MsgFailureItem    = "  ✗ %s: %v\n"
	MsgConfirmFormat  = "Move %d file(s) to trash, recovering %s? [y/N] "
	MsgConfigWritten  = "Wrote configuration to %s\n"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun     = "Preview changes without moving any file"
	MsgFlagFormat     = "Report format: table, csv, json, yaml or xml"
	MsgFlagTypes      = "Restrict the scan to file type categories (text, audio, video, archive)"
	MsgFlagExclude    = "Additional directory name patterns to exclude"
	MsgFlagWorkers    = "Number of concurrent hash workers"
	MsgFlagYes        = "Skip the confirmation prompt"
	MsgFlagOutput     = "Write the report to this file instead of stdout"
	MsgFlagWrite      = "Write the configuration to the user config path instead of stdout"
	MsgFlagNoProgress = "Disable progress bars"
)

// MsgUsageTemplate is cobra's usage template with the section headings
// run through the bold/upper template funcs so interactive help gets
// the same heading treatment as the command group titles.
const MsgUsageTemplate = `{{boldUpper "Usage:"}}{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "Aliases:"}}
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{boldUpper "Examples:"}}
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

{{boldUpper "Available Commands:"}}{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{bold (upper .Title)}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if not .AllChildCommandsHaveGroup}}

{{boldUpper "Additional Commands:"}}{{range $cmds}}{{if (and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "Flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "Global Flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

{{boldUpper "Additional help topics:"}}{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
