package classify

// Painter is the machine's downstream collaborator (spec §4.6). Handlers
// write through it rather than to the sink directly, so that hunk-body
// lines can be buffered and painted together at a flush point.
type Painter interface {
	// BufferMinus and BufferPlus push a prepared line onto the painter's
	// respective pending buffer, to be painted at the next Flush.
	BufferMinus(line string, st State)
	BufferPlus(line string, st State)

	// PaintZeroLine paints a context line immediately; it is never buffered.
	PaintZeroLine(line string, st State)

	// Flush runs the alignment/emphasis/highlight pipeline over any
	// buffered lines, emits the result, and clears the buffers. It is a
	// no-op when both buffers are empty.
	Flush()

	// Emit writes a line the machine has already fully formatted itself
	// (commit metadata, file-change descriptions, submodule lines, and so
	// on) directly to the output buffer.
	Emit(line string)

	// EmitHunkHeader renders a parsed "@@ ... @@" line per spec §4.7.
	EmitHunkHeader(info HunkHeaderInfo, raw string)

	// EmitMergeConflictLine renders one line of a merge-conflict marker
	// block, styled according to which side it belongs to.
	EmitMergeConflictLine(line string, side MergeSide)
}
