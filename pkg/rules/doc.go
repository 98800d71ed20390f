/*
Package rules loads the ordered text substitutions applied to filenames.

	+-------------+
	| replace.txt |
	+------+------+
	       |
	+------+------+
	|   RuleSet   |
	| (in order)  |
	+-------------+

🎯 Purpose:
- Parses the rule file into an ordered RuleSet
- Compiles each rule into a literal, case-insensitive matcher
- Never fails the run: missing files and bad lines only warn

📝 Rule file format:

	# comment
	"WEBRip" ""          quoted form, both segments verbatim
	1080p                single token, replaced with nothing
	colour color         unquoted form, split on the first whitespace run

Rules compose sequentially: each one runs on the output of the one before it,
so ("a","b") followed by ("b","c") turns "a" into "c".

🔍 Example:

	rs := rules.Load(ctx, "replace.txt")
	out := rs.Apply("Show WEBRip 1080p")
*/
package rules
