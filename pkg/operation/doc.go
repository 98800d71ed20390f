/*
Package operation implements the per-root phases that rename, delete and
flatten files.

	+-------------+      +-------------+
	|   Runner    |----->|  normalize  |  ignore → delete → transform → resolve → rename
	| (per root)  |      +-------------+
	+------+------+
	       |             +-------------+
	       +------------>|   flatten   |  resolve → move into root → prune
	                     +-------------+

🎯 Purpose:
- Walks every root given on the command line, in order
- Decides the fate of each regular file and reports it
- Never overwrites a file: every new name goes through the collision resolver

🔄 Flow:
1. The root is checked; a missing root is reported and skipped
2. normalize snapshots the tree, then processes each file of the snapshot
3. flatten (optional) takes a fresh snapshot and moves files at depth ≥ 2
4. Empty subdirectories are pruned, deepest first

⚡ Failure model:
- A failing file is reported as failed and the run moves on
- A root that cannot be listed ends that root only
- Cancellation is checked between files; a rename in progress completes

🤝 Interfaces:
- status.FileManager: snapshots and all mutations
- Resolver: picks a free name in a directory
- log.Logger (from context): one line per file for the operator

🔍 Example:

	runner, err := operation.NewRunner(operation.Options{
		Rules:              rs,
		Flatten:            true,
		Delete:             true,
		UnwantedExtensions: []string{".nfo", ".txt"},
	})
	if err != nil {
		return err
	}
	stats, err := runner.Run(ctx, []string{"/media/movies"})
*/
package operation
