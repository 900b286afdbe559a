package paradox

type parser struct {
	lx  *lexer
	buf []token // lookahead buffer
}

// Parse parses Paradox script source into a file node. The parser is
// deliberately tolerant: unbalanced braces close at end of file and stray
// tokens are kept as bare values, since broken mod files still need to be
// indexed for conflict attribution.
func Parse(src []byte) *Node {
	p := &parser{lx: newLexer(src)}
	root := &Node{Kind: KindFile, Line: 1}
	p.parseStatements(root, false)
	return root
}

func (p *parser) next() token {
	if len(p.buf) > 0 {
		t := p.buf[0]
		p.buf = p.buf[1:]
		return t
	}
	return p.lx.next()
}

func (p *parser) peek() token {
	if len(p.buf) == 0 {
		p.buf = append(p.buf, p.lx.next())
	}
	return p.buf[0]
}

// parseStatements fills parent with statements until a closing brace
// (when inBlock) or end of file.
func (p *parser) parseStatements(parent *Node, inBlock bool) {
	for {
		tok := p.next()
		switch tok.kind {
		case tokEOF:
			return
		case tokRBrace:
			if inBlock {
				return
			}
			// Stray closing brace at top level; skip it.
			continue
		case tokLBrace:
			// Anonymous block (seen in history files); keep its children
			// under an unnamed block node.
			block := &Node{Kind: KindBlock, Line: tok.line}
			p.parseStatements(block, true)
			parent.add(block)
		case tokOperator:
			// Operator with no key; skip.
			continue
		case tokWord, tokString:
			if p.peek().kind == tokOperator {
				op := p.next()
				parent.add(p.parseAssignment(tok, op))
			} else {
				// Bare value inside a block: an unnamed list member such
				// as an event id.
				parent.add(&Node{Kind: KindValue, Name: tok.text, Value: tok.text, Line: tok.line})
			}
		}
	}
}

func (p *parser) parseAssignment(key, op token) *Node {
	node := &Node{Name: key.text, Op: op.text, Line: key.line}

	val := p.next()
	switch val.kind {
	case tokLBrace:
		p.parseBrace(node)
	case tokWord, tokString:
		if val.kind == tokWord && p.peek().kind == tokLBrace {
			// Tagged array: color = hsv{ 0.025 0.55 0.7 }
			p.next() // consume '{'
			node.Kind = KindTagged
			node.Tag = val.text
			p.collectArrayValues(node)
		} else {
			node.Kind = KindValue
			node.Value = val.text
		}
	default:
		// key = } or key = EOF: record an empty value.
		node.Kind = KindValue
		if val.kind == tokRBrace {
			// The brace belongs to the enclosing block.
			p.buf = append([]token{val}, p.buf...)
		}
	}
	return node
}

// parseBrace parses { ... } after an assignment and classifies it as an
// array (only bare values) or a block (contains assignments).
func (p *parser) parseBrace(node *Node) {
	node.Kind = KindBlock
	p.parseStatements(node, true)

	allBare := len(node.Children) > 0
	for _, c := range node.Children {
		if c.Kind != KindValue || c.Op != "" {
			allBare = false
			break
		}
	}
	if allBare {
		node.Kind = KindArray
		node.Values = make([]string, len(node.Children))
		for i, c := range node.Children {
			node.Values[i] = c.Value
		}
		node.Children = nil
		node.index = nil
	}
}

func (p *parser) collectArrayValues(node *Node) {
	for {
		tok := p.next()
		switch tok.kind {
		case tokEOF, tokRBrace:
			return
		case tokWord, tokString:
			node.Values = append(node.Values, tok.text)
		}
	}
}

// Definitions returns the file's top-level definitions, pruned to maxDepth
// levels of nesting. maxDepth < 0 keeps everything; 0 keeps only the
// identifiers themselves, which is all conflict indexing needs.
func Definitions(root *Node, maxDepth int) []*Node {
	defs := make([]*Node, 0, len(root.Children))
	for _, c := range root.Children {
		defs = append(defs, prune(c, maxDepth, 0))
	}
	return defs
}

func prune(n *Node, maxDepth, depth int) *Node {
	if maxDepth < 0 || n.Kind != KindBlock {
		return n
	}
	copied := *n
	if depth >= maxDepth {
		copied.Children = nil
		copied.index = nil
		return &copied
	}
	copied.Children = make([]*Node, len(n.Children))
	copied.index = make(map[string]int, len(n.Children))
	for i, c := range n.Children {
		pc := prune(c, maxDepth, depth+1)
		copied.Children[i] = pc
		copied.index[pc.Name] = i
	}
	return &copied
}
