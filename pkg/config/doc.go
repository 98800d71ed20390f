/*
Package config loads the optional renamerc configuration file.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   YAML    |           |   HCL   |
	| Parser    |           | Parser  |
	+-----------+           +---------+

🎯 Purpose:
- Picks a parser by file extension (.yaml, .yml, .hcl)
- Rejects unknown fields and invalid values before anything runs
- Normalizes unwanted extensions to lower case with a leading dot
- Turns inline replacements into rules appended after the rule file's

Flags given on the command line win over values from the file. A relative
rules_file is resolved against the directory holding the config file.

🔍 Example (YAML):

	rules_file: replace.txt
	flatten: true
	delete: true
	suffix: uuid
	unwanted_extensions: [".nfo", ".txt", ".sfv"]
	ignore_patterns: ["*.partial", "Extras/**"]
	replacements:
	  - old: "1080p"
	    new: ""

🔍 Example (HCL):

	rules_file = "replace.txt"
	flatten    = true
	suffix     = "clock"

	replacement {
	  old = "1080p"
	}
*/
package config
