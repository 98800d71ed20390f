/*
Package status performs the file system mutations of a run and defines the
vocabulary used to report them.

	            +-------------+
	            |   Manager   |
	            | (mutations) |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+-----+
	| Snapshot  |           |  Format  |
	|  (walk)   |           | (report) |
	+-----------+           +----------+

🎯 Purpose:
- Lists the regular files of a tree before anything is changed
- Deletes, renames and moves files without ever replacing one
- Prunes directories left empty, deepest first
- Formats one line per file outcome

⚡ No-clobber rename:
A rename hard-links the file under its new name, then unlinks the old one.
link(2) fails when the target exists, so a file that appears between the
collision check and the rename is never overwritten. If the unlink fails the
new link is removed again. Filesystems without hard links fall back to a
checked rename(2).

🔍 Example:

	mgr := status.NewManager()
	entries, err := mgr.Snapshot(ctx, root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Println(status.FormatOperation(status.Operation{
			Status: status.StatusUnchanged,
			Path:   e.Rel,
		}))
	}
*/
package status
