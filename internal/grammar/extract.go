package grammar

// Parse extracts grammar metadata from the raw content of the file at path.
// It returns a *ParseError when the content has no valid grammar declaration
// header; such a file is reported and excluded, but never aborts the run.
func Parse(path string, src []byte) (*File, error) {
	tokens := tokenize(stripNonCode(src))

	file := &File{Path: path}
	rest, err := parseDeclaration(path, tokens, file)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case "import":
			i = parseImports(rest, i, file, seen)
		case "options":
			i = parseOptions(rest, i, file)
		}
	}

	return file, nil
}

// parseDeclaration matches the grammar header, which must be the first real
// statement: `lexer grammar N;`, `parser grammar N;` or `grammar N;`.
// It fills in the name and kind and returns the remaining tokens.
func parseDeclaration(path string, tokens []string, file *File) ([]string, error) {
	fail := func(reason string) ([]string, error) {
		return nil, &ParseError{Path: path, Reason: reason}
	}

	if len(tokens) == 0 {
		return fail("no grammar declaration found")
	}

	switch tokens[0] {
	case "lexer":
		file.Kind = Lexer
		tokens = tokens[1:]
	case "parser":
		file.Kind = Parser
		tokens = tokens[1:]
	case "grammar":
		file.Kind = Combined
	default:
		return fail("first statement is not a grammar declaration")
	}

	if len(tokens) == 0 || tokens[0] != "grammar" {
		return fail("first statement is not a grammar declaration")
	}
	if len(tokens) < 2 || !isIdentifier(tokens[1]) {
		return fail("grammar declaration is missing a name")
	}
	if len(tokens) < 3 || tokens[2] != ";" {
		return fail("grammar declaration is not terminated with ';'")
	}

	file.Name = tokens[1]
	return tokens[3:], nil
}

// parseImports consumes an `import A, B;` statement starting at tokens[i]
// and returns the index of the last consumed token. Duplicate names are
// collapsed, declaration order is preserved.
func parseImports(tokens []string, i int, file *File, seen map[string]bool) int {
	j := i + 1
	for j < len(tokens) && tokens[j] != ";" {
		if isIdentifier(tokens[j]) && !seen[tokens[j]] {
			seen[tokens[j]] = true
			file.Imports = append(file.Imports, tokens[j])
		}
		j++
	}
	return j
}

// parseOptions consumes an `options { ... }` block starting at tokens[i],
// picking up a `tokenVocab = N;` assignment if one is present, and returns
// the index of the last consumed token.
func parseOptions(tokens []string, i int, file *File) int {
	j := i + 1
	if j >= len(tokens) || tokens[j] != "{" {
		return i
	}
	depth := 1
	for j++; j < len(tokens) && depth > 0; j++ {
		switch tokens[j] {
		case "{":
			depth++
		case "}":
			depth--
		case "tokenVocab":
			if file.TokenVocab == "" && j+2 < len(tokens) && tokens[j+1] == "=" && isIdentifier(tokens[j+2]) {
				file.TokenVocab = tokens[j+2]
			}
		}
	}
	return j - 1
}

// isIdentifier reports whether tok is a plausible grammar name: tokenize
// only ever emits multi-character tokens for identifier runs, so checking
// the first byte is sufficient.
func isIdentifier(tok string) bool {
	return len(tok) > 0 && isIdentStart(tok[0])
}
