package formula

// symbols maps argument-less commands to the character they render as.
var symbols = map[string]string{
	// Greek, lowercase
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ϵ",
	"varepsilon": "ε", "zeta": "ζ", "eta": "η", "theta": "θ", "vartheta": "ϑ",
	"iota": "ι", "kappa": "κ", "lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ",
	"omicron": "ο", "pi": "π", "varpi": "ϖ", "rho": "ρ", "varrho": "ϱ",
	"sigma": "σ", "varsigma": "ς", "tau": "τ", "upsilon": "υ", "phi": "ϕ",
	"varphi": "φ", "chi": "χ", "psi": "ψ", "omega": "ω",

	// Greek, uppercase
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ", "Xi": "Ξ",
	"Pi": "Π", "Sigma": "Σ", "Upsilon": "Υ", "Phi": "Φ", "Psi": "Ψ", "Omega": "Ω",

	// Binary operators
	"times": "×", "cdot": "⋅", "div": "÷", "pm": "±", "mp": "∓", "ast": "∗",
	"star": "⋆", "circ": "∘", "bullet": "∙", "oplus": "⊕", "ominus": "⊖",
	"otimes": "⊗", "odot": "⊙", "cup": "∪", "cap": "∩", "setminus": "∖",
	"wedge": "∧", "land": "∧", "vee": "∨", "lor": "∨", "neg": "¬", "lnot": "¬",

	// Relations
	"leq": "≤", "le": "≤", "geq": "≥", "ge": "≥", "neq": "≠", "ne": "≠",
	"approx": "≈", "equiv": "≡", "sim": "∼", "simeq": "≃", "cong": "≅",
	"propto": "∝", "ll": "≪", "gg": "≫", "in": "∈", "notin": "∉", "ni": "∋",
	"subset": "⊂", "supset": "⊃", "subseteq": "⊆", "supseteq": "⊇",
	"perp": "⊥", "parallel": "∥", "mid": "∣", "models": "⊨", "vdash": "⊢",

	// Arrows
	"to": "→", "rightarrow": "→", "leftarrow": "←", "gets": "←",
	"leftrightarrow": "↔", "Rightarrow": "⇒", "Leftarrow": "⇐",
	"Leftrightarrow": "⇔", "implies": "⟹", "iff": "⟺", "mapsto": "↦",
	"uparrow": "↑", "downarrow": "↓", "longrightarrow": "⟶", "longleftarrow": "⟵",

	// Miscellaneous
	"infty": "∞", "partial": "∂", "nabla": "∇", "forall": "∀", "exists": "∃",
	"nexists": "∄", "emptyset": "∅", "varnothing": "∅", "therefore": "∴",
	"because": "∵", "angle": "∠", "triangle": "△", "prime": "′", "hbar": "ℏ",
	"ell": "ℓ", "Re": "ℜ", "Im": "ℑ", "aleph": "ℵ", "degree": "°",
	"ldots": "…", "dots": "…", "cdots": "⋯", "vdots": "⋮", "ddots": "⋱",
	"langle": "⟨", "rangle": "⟩", "lceil": "⌈", "rceil": "⌉",
	"lfloor": "⌊", "rfloor": "⌋", "lvert": "|", "rvert": "|",
	"lVert": "‖", "rVert": "‖", "vert": "|", "Vert": "‖",
}

// relations are the runs that end the body of a big operator.
var relations = map[string]bool{
	"=": true, "<": true, ">": true, "≤": true, "≥": true, "≠": true,
	"≈": true, "≡": true, "∼": true, "≃": true, "≅": true, "∝": true,
	"→": true, "⇒": true, "⟹": true, "⇔": true, "⟺": true, "∈": true,
}

// functions render upright.
var functions = map[string]bool{
	"sin": true, "cos": true, "tan": true, "cot": true, "sec": true, "csc": true,
	"arcsin": true, "arccos": true, "arctan": true, "sinh": true, "cosh": true,
	"tanh": true, "coth": true, "log": true, "ln": true, "lg": true, "exp": true,
	"deg": true, "dim": true, "ker": true, "hom": true, "arg": true,
}

// limitFunctions render upright and take their subscript underneath.
var limitFunctions = map[string]bool{
	"lim": true, "liminf": true, "limsup": true, "max": true, "min": true,
	"sup": true, "inf": true, "det": true, "gcd": true, "Pr": true,
	"argmax": true, "argmin": true,
}

var limitNames = map[string]string{
	"liminf": "lim inf", "limsup": "lim sup", "argmax": "arg max", "argmin": "arg min",
}

// naryOps are the big operators.
var naryOps = map[string]string{
	"sum": "∑", "prod": "∏", "coprod": "∐", "int": "∫", "iint": "∬",
	"iiint": "∭", "oint": "∮", "bigcup": "⋃", "bigcap": "⋂",
	"bigoplus": "⨁", "bigotimes": "⨂", "bigvee": "⋁", "bigwedge": "⋀",
}

// accents map to combining characters.
var accents = map[string]string{
	"hat": "̂", "widehat": "̂", "check": "̌", "tilde": "̃",
	"widetilde": "̃", "acute": "́", "grave": "̀", "dot": "̇",
	"ddot": "̈", "breve": "̆", "bar": "̅", "vec": "⃗",
}

// spaces are the explicit spacing commands.
var spaces = map[string]string{
	",": " ", ":": " ", ";": " ", " ": " ", "quad": " ",
	"qquad": "  ", "enspace": " ", "thinspace": " ", "!": "",
}

// ignored commands change sizing or layout only.
var ignored = map[string]bool{
	"displaystyle": true, "textstyle": true, "scriptstyle": true,
	"limits": true, "nolimits": true, "big": true, "Big": true,
	"bigg": true, "Bigg": true, "bigl": true, "bigr": true, "Bigl": true,
	"Bigr": true, "nonumber": true, "notag": true,
}

// matrixDelims gives the fences for each matrix environment.
var matrixDelims = map[string][2]string{
	"matrix":      {"", ""},
	"smallmatrix": {"", ""},
	"array":       {"", ""},
	"aligned":     {"", ""},
	"align":       {"", ""},
	"align*":      {"", ""},
	"gathered":    {"", ""},
	"split":       {"", ""},
	"pmatrix":     {"(", ")"},
	"bmatrix":     {"[", "]"},
	"Bmatrix":     {"{", "}"},
	"vmatrix":     {"|", "|"},
	"Vmatrix":     {"‖", "‖"},
	"cases":       {"{", ""},
}

var doubleStruck = map[rune]rune{
	'C': 'ℂ', 'H': 'ℍ', 'N': 'ℕ', 'P': 'ℙ', 'Q': 'ℚ', 'R': 'ℝ', 'Z': 'ℤ',
}

var scriptLetters = map[rune]rune{
	'B': 'ℬ', 'E': 'ℰ', 'F': 'ℱ', 'H': 'ℋ', 'I': 'ℐ', 'L': 'ℒ', 'M': 'ℳ', 'R': 'ℛ',
	'e': 'ℯ', 'g': 'ℊ', 'o': 'ℴ',
}

var frakturLetters = map[rune]rune{
	'C': 'ℭ', 'H': 'ℌ', 'I': 'ℑ', 'R': 'ℜ', 'Z': 'ℨ',
}

// alphabet maps a letter into a mathematical alphanumeric block.
type alphabet struct {
	upper, lower, digit rune
	except              map[rune]rune
}

var alphabets = map[string]alphabet{
	"mathbb":   {upper: 0x1D538, lower: 0x1D552, digit: 0x1D7D8, except: doubleStruck},
	"mathcal":  {upper: 0x1D49C, lower: 0x1D4B6, except: scriptLetters},
	"mathscr":  {upper: 0x1D49C, lower: 0x1D4B6, except: scriptLetters},
	"mathfrak": {upper: 0x1D504, lower: 0x1D51E, except: frakturLetters},
}

func (a alphabet) mapString(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if m, ok := a.except[r]; ok {
			out = append(out, m)
			continue
		}
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, a.upper+(r-'A'))
		case r >= 'a' && r <= 'z' && a.lower != 0:
			out = append(out, a.lower+(r-'a'))
		case r >= '0' && r <= '9' && a.digit != 0:
			out = append(out, a.digit+(r-'0'))
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
