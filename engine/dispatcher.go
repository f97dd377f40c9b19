package engine

import "fmt"

// ParseSequence recognizes one statement-introducing token and dispatches
// to its handler, then always consumes the rest of the line. Grounded on
// sequence_parse (original_source/src/sequence.c); "sequence" there names
// one logical line of the configuration language, the unit this function
// parses.
func (c *Context) ParseSequence() {
	if c.Depth >= MaxDepth {
		return
	}
	c.Depth++
	defer func() { c.Depth-- }()

	token, kind := c.GetToken(nil)
	if kind != KindSectionBegin && c.SkipSequences {
		kind = KindInvalid
	}

	switch kind {
	case KindVarAppend, KindVarPrepend, KindVarMerge:
		c.combineVar(kind)
	case KindVarDeclaration:
		c.declareVariable()
	case KindEnumDeclaration:
		c.declareEnum()
	case KindSectionBegin:
		c.sectionBegin()
	case KindSectionAdd:
		c.sectionAdd()
	case KindSectionDel:
		c.sectionDel()
	case KindInclude:
		c.include()
	case KindForBegin:
		c.iterate()
	case KindSeed:
		c.seed()
	case KindPrint:
		c.print()
	case KindRestrict:
		c.restrictMode()
	case KindInvalid:
		// dropped line: gated by SECTION, or nothing left to read
	default:
		c.declareResource(token)
	}

	c.GotoEOL()
}

// combineVar implements VAR/PREPEND/MERGE: derives a new variable group
// from an existing one by appending/prepending a literal or merging with
// a second variable, element-wise. Grounded on combine_var.
func (c *Context) combineVar(kind Kind) {
	if c.Restricted {
		return
	}

	name, k0 := c.GetToken(nil)
	token1, k1 := c.GetToken(nil)
	token2, k2 := c.GetToken(nil)
	if k0 == KindInvalid || k1 == KindInvalid || k2 == KindInvalid {
		return
	}
	srcGroup, ok := c.Store.KeysVars.Find(token1, NSVariable)
	if !ok {
		return
	}
	var mergeGroup uint64
	if kind == KindVarMerge {
		mergeGroup, ok = c.Store.KeysVars.Find(token2, NSVariable)
		if !ok {
			return
		}
	}

	c.Store.Vars.NewGroup()
	n := c.Store.Vars.GroupLen(int(srcGroup))
	for i := 0; i < n; i++ {
		val := c.Store.Vars.WordAt(int(srcGroup), i)
		switch kind {
		case KindVarAppend:
			val = val + token2
		case KindVarPrepend:
			val = token2 + val
		case KindVarMerge:
			val = val + c.Store.Vars.WordAt(int(mergeGroup), i)
		}
		c.Store.Vars.Write(val)
	}

	c.Store.KeysVars.Write(name, NSVariable, uint64(c.Store.Vars.Groups()-1))
}

// declareEnum builds an evenly (or not) spaced numeric sequence as a
// variable, with a cascading-defaults parameter scheme: fewer arguments
// fill in looser defaults for the missing ones, grounded precisely on
// declare_enum's switch-with-fallthrough over the argument count.
func (c *Context) declareEnum() {
	if c.Restricted {
		return
	}

	var name string
	var min, max, steps, precision float64
	n := 0

	if t, k := c.GetToken(nil); k != KindInvalid {
		name = t
		n++
	}
	if v, k := c.GetTokenNumeral(); k != KindInvalid {
		min = v
		n++
	}
	if v, k := c.GetTokenNumeral(); k != KindInvalid {
		max = v
		n++
	}
	if v, k := c.GetTokenNumeral(); k != KindInvalid {
		steps = v
		n++
	}
	if v, k := c.GetTokenNumeral(); k != KindInvalid {
		precision = v
		n++
	}

	switch n {
	case 0, 1:
		return
	case 2:
		max = min
		min = 0.0
		fallthrough
	case 3:
		steps = max - min
		fallthrough
	case 4:
		precision = 0.0
	}

	if steps < 1.0 || precision < 0.0 {
		return
	}
	if precision > MaxEnumPrecision {
		precision = MaxEnumPrecision
	}

	c.Store.Vars.NewGroup()
	for i := 0; i <= int(steps); i++ {
		ratio := min + (max-min)*(float64(i)/steps)
		c.Store.Vars.Write(fmt.Sprintf("%.*f", int(precision), ratio))
	}

	c.Store.KeysVars.Write(name, NSVariable, uint64(c.Store.Vars.Groups()-1))
}

// declareResource writes a bare token's trailing values into the
// sequences book under namespace/name, creating the namespace's dynamic
// id on first use. Grounded on declare_resource.
func (c *Context) declareResource(namespace string) {
	name, k := c.GetToken(nil)
	if k == KindInvalid {
		return
	}

	c.Store.Sequences.NewGroup()
	n := 0
	for {
		v, k := c.GetToken(nil)
		if k == KindInvalid {
			break
		}
		c.Store.Sequences.Write(v)
		n++
	}
	if n == 0 {
		c.Store.Sequences.UndoGroup()
		return
	}

	nsID, ok := c.Store.KeysSequences.Find(namespace, 0)
	if !ok {
		nsID = uint64(c.Store.Sequences.Groups())
		c.Store.KeysSequences.Write(namespace, 0, nsID)
	}
	c.Store.KeysSequences.Write(name, nsID, uint64(c.Store.Sequences.Groups()-1))
}

// declareVariable writes a LET declaration's trailing values into
// the vars book. Grounded on declare_variable.
func (c *Context) declareVariable() {
	if c.Restricted {
		return
	}

	name, k := c.GetToken(nil)
	if k == KindInvalid {
		return
	}

	c.Store.Vars.NewGroup()
	n := 0
	for {
		v, k := c.GetToken(nil)
		if k == KindInvalid {
			break
		}
		c.Store.Vars.Write(v)
		n++
	}
	if n == 0 {
		c.Store.Vars.UndoGroup()
		return
	}

	c.Store.KeysVars.Write(name, NSVariable, uint64(c.Store.Vars.Groups()-1))
}

// include reads a whitespace-separated list of paths and recursively
// parses each as a child source. Absolute paths (leading '/') are opened
// as given; relative paths always resolve against the *root* file's
// directory, not the including file's, so that deeply nested includes
// stay anchored. Grounded on sequence.c's include, generalized to
// resolve against the root rather than the immediate parent.
func (c *Context) include() {
	if c.Restricted || c.FileInode == 0 {
		return
	}

	for {
		token, k := c.GetToken(nil)
		if k == KindInvalid {
			break
		}
		var path string
		if len(token) > 0 && token[0] == '/' {
			path = token
		} else {
			path = c.FileDir + "/" + token
		}
		c.parseChildFile(path)
	}
}

// iterate implements FOR_EACH ... FOR_END. On first entry to an
// outermost loop it scans ahead and buffers the loop body's raw tokens
// into the iteration book (preprocIterNew); a nested FOR_EACH instead
// locates the matching FOR_END among already-buffered tokens
// (preprocIterNest). The loop body is then replayed once per bound
// variable value via the it_group/it_i replay cursors. Grounded on
// iterate, preproc_iter_new and preproc_iter_nest.
func (c *Context) iterate() {
	if c.Restricted {
		return
	}

	token, k := c.GetToken(nil)
	if k == KindInvalid {
		return
	}
	varGroup, ok := c.Store.KeysVars.Find(token, NSVariable)
	if !ok {
		return
	}

	name, k := c.GetToken(nil)
	if k == KindInvalid {
		name = token
	}

	if _, already := c.Store.KeysVars.Find(name, NSIteration); already {
		return
	}

	nested := c.Store.Iteration.Groups() > 0

	var groupStart, groupEnd int
	fail := false
	if nested {
		groupStart = c.ItGroup + 1
		groupEnd, fail = c.preprocIterNest(groupStart)
	} else {
		fail = c.preprocIterNew()
		groupStart = 0
		groupEnd = c.Store.Iteration.Groups()
	}

	if !fail {
		n := c.Store.Vars.GroupLen(int(varGroup))
		for k := 0; k < n; k++ {
			c.Store.KeysVars.Write(name, NSIteration, uint64(c.Store.Vars.WordIndex(int(varGroup), k)))
			// ItGroup itself is the loop index, so a nested FOR_EACH that
			// leaves it on its own FOR_END makes this loop resume after it.
			for c.ItGroup = groupStart; c.ItGroup < groupEnd; c.ItGroup++ {
				c.ItI = 0
				c.ParseSequence()
			}
		}
		c.Store.KeysVars.Erase(name, NSIteration)
	}

	if !nested {
		c.Store.Iteration.Clear()
	}
}

// preprocIterNest scans an already-buffered iteration book, starting at
// startGroup, for the FOR_END matching a FOR_BEGIN nesting depth of zero,
// tracking nested FOR_BEGIN/FOR_END pairs in between. Grounded on
// preproc_iter_nest.
func (c *Context) preprocIterNest(startGroup int) (int, bool) {
	depth := 0
	i := startGroup
	for ; i < c.Store.Iteration.Groups(); i++ {
		c.ItGroup = i
		c.ItI = 0
		token, _ := c.GetTokenRaw()
		switch c.Store.Tokens.Match(token) {
		case KindForBegin:
			depth++
		case KindForEnd:
			if depth == 0 {
				return i, false
			}
			depth--
		}
	}
	return i, true
}

// preprocIterNew reads fresh input line by line, buffering each raw
// (unexpanded) line into the iteration book until it finds the FOR_END
// matching this FOR_EACH's nesting depth. Grounded on preproc_iter_new.
func (c *Context) preprocIterNew() bool {
	c.GotoEOL()
	depth := 0
	for !c.EOFReached {
		c.EOLReached = false
		token, _ := c.GetTokenRaw()

		switch c.Store.Tokens.Match(token) {
		case KindForBegin:
			depth++
		case KindForEnd:
			if depth == 0 {
				c.GotoEOL()
				return false
			}
			depth--
		case KindInvalid:
			c.GotoEOL()
			continue
		}

		c.Store.Iteration.NewGroup()
		c.Store.Iteration.Write(token)
		for {
			tok, k := c.GetTokenRaw()
			if k == KindInvalid {
				break
			}
			c.Store.Iteration.Write(tok)
		}
	}
	return true
}

// print writes every expanded token of the rest of the line to Diag,
// each followed by ",\t", then a trailing newline — the exact format of
// the original's fprintf(stderr, "%s,\t", token) loop, preserved
// verbatim. Grounded on print.
func (c *Context) print() {
	if c.Restricted {
		return
	}
	for {
		token, k := c.GetToken(nil)
		if k == KindInvalid {
			break
		}
		fmt.Fprintf(c.Diag, "%s,\t", token)
	}
	fmt.Fprintf(c.Diag, "\n")
}

// restrictMode permanently (for this and all descendant contexts) switches
// the parse into restricted mode. Grounded on restrict_mode.
func (c *Context) restrictMode() {
	c.Restricted = true
	c.Store.Restricted = true
}

// sectionAdd registers each following token as a satisfied section
// condition. Grounded on section_add.
func (c *Context) sectionAdd() {
	if c.Restricted {
		return
	}
	for {
		token, k := c.GetToken(nil)
		if k == KindInvalid {
			break
		}
		c.Store.KeysVars.Write(token, NSSection, 0)
	}
}

// sectionBegin gates the rest of the file on every following token being
// a previously-added section condition; on the first missing one it sets
// SkipSequences and stops reading (mirroring the original's early
// return). Unlike every other statement handler, this one still runs in
// restricted mode: SECTION_BEGIN and resource declaration
// are the only two operations restricted mode leaves usable.
func (c *Context) sectionBegin() {
	for {
		token, k := c.GetToken(nil)
		if k == KindInvalid {
			break
		}
		if _, ok := c.Store.KeysVars.Find(token, NSSection); !ok {
			c.SkipSequences = true
			return
		}
	}
	c.SkipSequences = false
}

// sectionDel removes each following token as a section condition.
// Grounded on section_del.
func (c *Context) sectionDel() {
	if c.Restricted {
		return
	}
	for {
		token, k := c.GetToken(nil)
		if k == KindInvalid {
			break
		}
		c.Store.KeysVars.Erase(token, NSSection)
	}
}

// seed reseeds the context's random generator from the first numeral on
// the line. Grounded on seed.
func (c *Context) seed() {
	if c.Restricted {
		return
	}
	if v, k := c.GetTokenNumeral(); k != KindInvalid {
		c.Rand.Seed(int64(v))
	}
}
