// mmcfg validates Module Manager patch files (.cfg) for Kerbal Space Program.
//
// It parses every patch with the full patch grammar (operators, filters,
// :NEEDS, :HAS, indices, pass markers and #paste directives), reports syntax
// errors with their exact position, and lints constructs that parse but a
// patch engine is likely to ignore.
//
// Usage:
//
//	# Validate every .cfg under GameData
//	mmcfg validate GameData
//
//	# Annotate a pull request from GitHub Actions (auto-detected)
//	mmcfg validate --format github GameData
//
//	# Print a file in canonical form
//	mmcfg fmt GameData/MyMod/patches.cfg
//
//	# Show which :NEEDS clauses hold for an install
//	mmcfg needs --mods RealFuels,B9PartSwitch GameData/MyMod
//
//	# Revalidate on every save, serving metrics on :9464
//	mmcfg watch GameData
//
// Exit status is 0 when every file is valid, 2 when at least one file
// failed validation, and 1 for usage and configuration errors.
package main

func main() {
	Execute()
}
