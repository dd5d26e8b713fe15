package tex

import fd "github.com/ByLCY/mathbox/fontdata"

var c = fd.C

// normalChars 是直立（cmr/cmsy）字符表。
var normalChars = map[rune]fd.CharMetrics{
	' ':      c(0, 0, 0.25),
	' ': c(0, 0, 0.25),
	'!':      c(0.716, 0, 0.278),
	'#':      c(0.694, 0.194, 0.833),
	'%':      c(0.75, 0.056, 0.833),
	'&':      c(0.716, 0.022, 0.778),
	'\'':     c(0.694, 0, 0.278),
	'(':      c(0.75, 0.25, 0.389),
	')':      c(0.75, 0.25, 0.389),
	'*':      c(0.75, 0, 0.5),
	'+':      c(0.583, 0.082, 0.778),
	',':      c(0.121, 0.194, 0.278),
	'-':      c(0.252, -0.179, 0.333),
	'.':      c(0.12, 0, 0.278),
	'/':      c(0.75, 0.25, 0.5),
	'0':      c(0.666, 0.022, 0.5),
	'1':      c(0.666, 0, 0.5),
	'2':      c(0.666, 0, 0.5),
	'3':      c(0.665, 0.022, 0.5),
	'4':      c(0.677, 0, 0.5),
	'5':      c(0.666, 0.022, 0.5),
	'6':      c(0.666, 0.022, 0.5),
	'7':      c(0.676, 0.022, 0.5),
	'8':      c(0.666, 0.022, 0.5),
	'9':      c(0.666, 0.022, 0.5),
	':':      c(0.43, 0, 0.278),
	';':      c(0.43, 0.194, 0.278),
	'<':      c(0.54, 0.04, 0.778),
	'=':      c(0.367, -0.133, 0.778),
	'>':      c(0.54, 0.04, 0.778),
	'?':      c(0.705, 0, 0.472),
	'@':      c(0.705, 0.011, 0.778),
	'[':      c(0.75, 0.25, 0.278),
	'\\':     c(0.75, 0.25, 0.5),
	']':      c(0.75, 0.25, 0.278),
	'^':      c(0.694, 0, 0.5),
	'_':      c(-0.025, 0.062, 0.5),
	'`':      c(0.699, 0, 0.5),
	'{':      c(0.75, 0.25, 0.5),
	'|':      c(0.75, 0.249, 0.278),
	'}':      c(0.75, 0.25, 0.5),
	'~':      c(0.318, -0.215, 0.5),
	'¬':      c(0.356, -0.089, 0.667),
	'¯':      c(0.59, -0.544, 0.5),
	'°':      c(0.715, 0, 0.5),
	'±':      c(0.666, 0, 0.778),
	'´':      c(0.699, 0, 0.5),
	'·':      c(0.31, -0.199, 0.278),
	'×':      c(0.491, -0.009, 0.778),
	'÷':      c(0.537, 0.036, 0.778),
	'ˆ':      c(0.694, 0, 0.5),
	'ˇ':      c(0.644, 0, 0.5),
	'˙':      c(0.669, 0, 0.278),
	'˜':      c(0.668, 0, 0.5),
	'¨':      c(0.669, 0, 0.5),
	'Γ':      c(0.68, 0, 0.625),
	'Δ':      c(0.716, 0, 0.833),
	'Θ':      c(0.705, 0.022, 0.778),
	'Λ':      c(0.716, 0, 0.694),
	'Ξ':      c(0.677, 0, 0.667),
	'Π':      c(0.68, 0, 0.75),
	'Σ':      c(0.683, 0, 0.722),
	'Υ':      c(0.705, 0, 0.778),
	'Φ':      c(0.683, 0, 0.722),
	'Ψ':      c(0.683, 0, 0.778),
	'Ω':      c(0.705, 0, 0.722),
	'–': c(0.285, -0.248, 0.5),
	'—': c(0.285, -0.248, 1),
	'‖':      c(0.75, 0.25, 0.5),
	'†':      c(0.705, 0.216, 0.444),
	'‡':      c(0.705, 0.205, 0.444),
	'…':      c(0.12, 0, 1.172),
	'′':      c(0.56, -0.043, 0.275),
	'‾':      c(0.59, -0.544, 0.5),
	'ℏ':      c(0.695, 0.013, 0.54),
	'ℓ':      c(0.705, 0.02, 0.417),
	'ℜ':      c(0.716, 0.022, 0.722),
	'ℑ':      c(0.716, 0.022, 0.611),
	'℘':      c(0.453, 0.216, 0.636),
	'ℵ':      c(0.694, 0, 0.611),
	'←':      c(0.511, 0.011, 1),
	'↑':      c(0.694, 0.193, 0.5),
	'→':      c(0.511, 0.011, 1),
	'↓':      c(0.694, 0.194, 0.5),
	'↔':      c(0.511, 0.011, 1),
	'↦':      c(0.511, 0.011, 1),
	'⇐':      c(0.525, 0.024, 1),
	'⇒':      c(0.525, 0.024, 1),
	'⇔':      c(0.526, 0.025, 1),
	'∀':      c(0.694, 0.022, 0.556),
	'∂':      c(0.715, 0.022, 0.531, 0, 0.083),
	'∃':      c(0.694, 0, 0.556),
	'∅':      c(0.772, 0.078, 0.5),
	'∇':      c(0.683, 0.033, 0.833),
	'∈':      c(0.54, 0.04, 0.667),
	'∉':      c(0.716, 0.215, 0.667),
	'∋':      c(0.54, 0.04, 0.667),
	'−': c(0.583, 0.082, 0.778),
	'∓':      c(0.5, 0.166, 0.778),
	'∕':      c(0.75, 0.25, 0.5),
	'∖':      c(0.75, 0.25, 0.5),
	'∗':      c(0.465, -0.035, 0.5),
	'∘':      c(0.444, -0.055, 0.5),
	'∙':      c(0.444, -0.055, 0.5),
	'√':      c(0.8, 0.2, 0.833),
	'∝':      c(0.442, 0.011, 0.778),
	'∞':      c(0.442, 0.011, 1),
	'∣':      c(0.75, 0.249, 0.278),
	'∥':      c(0.75, 0.25, 0.5),
	'∧':      c(0.598, 0.022, 0.667),
	'∨':      c(0.598, 0.022, 0.667),
	'∩':      c(0.598, 0.022, 0.667),
	'∪':      c(0.598, 0.022, 0.667),
	'∫':      c(0.716, 0.216, 0.417, 0.055),
	'∼':      c(0.367, -0.133, 0.778),
	'≀':      c(0.583, 0.083, 0.278),
	'≃':      c(0.464, -0.036, 0.778),
	'≅':      c(0.589, -0.022, 0.778),
	'≈':      c(0.483, -0.055, 0.778),
	'≍':      c(0.484, -0.016, 0.778),
	'≐':      c(0.67, -0.133, 0.778),
	'≠':      c(0.716, 0.215, 0.778),
	'≡':      c(0.464, -0.036, 0.778),
	'≤':      c(0.636, 0.138, 0.778),
	'≥':      c(0.636, 0.138, 0.778),
	'≪':      c(0.568, 0.067, 1),
	'≫':      c(0.567, 0.067, 1),
	'≺':      c(0.539, 0.041, 0.778),
	'≻':      c(0.539, 0.041, 0.778),
	'⊂':      c(0.54, 0.04, 0.778),
	'⊃':      c(0.54, 0.04, 0.778),
	'⊆':      c(0.636, 0.138, 0.778),
	'⊇':      c(0.636, 0.138, 0.778),
	'⊎':      c(0.598, 0.022, 0.667),
	'⊕':      c(0.583, 0.083, 0.778),
	'⊖':      c(0.583, 0.083, 0.778),
	'⊗':      c(0.583, 0.083, 0.778),
	'⊘':      c(0.583, 0.083, 0.778),
	'⊙':      c(0.583, 0.083, 0.778),
	'⊢':      c(0.694, 0, 0.611),
	'⊣':      c(0.694, 0, 0.611),
	'⊤':      c(0.668, 0, 0.778),
	'⊥':      c(0.668, 0, 0.778),
	'⊨':      c(0.75, 0.249, 0.867),
	'⋄':      c(0.488, -0.012, 0.5),
	'⋅':      c(0.31, -0.199, 0.278),
	'⋆':      c(0.486, -0.016, 0.5),
	'⋮':      c(0.75, 0.022, 0.278),
	'⋯':      c(0.31, -0.199, 1.172),
	'⋱':      c(0.722, 0.06, 1.282),
	'⌈':      c(0.75, 0.25, 0.444),
	'⌉':      c(0.75, 0.25, 0.444),
	'⌊':      c(0.75, 0.25, 0.444),
	'⌋':      c(0.75, 0.25, 0.444),
	'⌢':      c(0.388, -0.122, 1),
	'⌣':      c(0.378, -0.134, 1),
	'⏐':      c(0.602, 0, 0.278),
	'─':      c(0.274, -0.226, 0.5),
	'╭':      c(0.274, 0.038, 0.45),
	'╮':      c(0.274, 0.038, 0.45),
	'╰':      c(0.01, 0.226, 0.45),
	'╯':      c(0.01, 0.226, 0.45),
	'┬':      c(0.274, 0.12, 0.9),
	'┴':      c(0.39, -0.226, 0.9),
	'⟨':      c(0.75, 0.25, 0.389),
	'⟩':      c(0.75, 0.25, 0.389),
	'⟵':      c(0.511, 0.011, 1.609),
	'⟶':      c(0.511, 0.011, 1.638),
	'⟹':      c(0.525, 0.024, 1.638),
	'⏞':      c(0.82, -0.241, 1),
	'⏟':      c(-0.241, 0.82, 1),
}

// uprightLatin 是 cmr10 的直立拉丁字母。
var uprightLatin = map[rune]fd.CharMetrics{
	'A': c(0.716, 0, 0.75), 'B': c(0.683, 0, 0.708), 'C': c(0.705, 0.021, 0.722),
	'D': c(0.683, 0, 0.764), 'E': c(0.68, 0, 0.681), 'F': c(0.68, 0, 0.653),
	'G': c(0.705, 0.022, 0.785), 'H': c(0.683, 0, 0.75), 'I': c(0.683, 0, 0.361),
	'J': c(0.683, 0.022, 0.514), 'K': c(0.683, 0, 0.778), 'L': c(0.683, 0, 0.625),
	'M': c(0.683, 0, 0.917), 'N': c(0.683, 0, 0.75), 'O': c(0.705, 0.022, 0.778),
	'P': c(0.683, 0, 0.681), 'Q': c(0.705, 0.193, 0.778), 'R': c(0.683, 0.022, 0.736),
	'S': c(0.705, 0.022, 0.556), 'T': c(0.677, 0, 0.722), 'U': c(0.683, 0.022, 0.75),
	'V': c(0.683, 0.022, 0.75), 'W': c(0.683, 0.022, 1.028), 'X': c(0.683, 0, 0.75),
	'Y': c(0.683, 0, 0.75), 'Z': c(0.683, 0, 0.611),
	'a': c(0.448, 0.011, 0.5), 'b': c(0.694, 0.011, 0.556), 'c': c(0.448, 0.011, 0.444),
	'd': c(0.694, 0.011, 0.556), 'e': c(0.448, 0.011, 0.444), 'f': c(0.705, 0, 0.306, 0.078),
	'g': c(0.453, 0.206, 0.5), 'h': c(0.694, 0, 0.556), 'i': c(0.669, 0, 0.278),
	'j': c(0.669, 0.205, 0.306), 'k': c(0.694, 0, 0.528), 'l': c(0.694, 0, 0.278),
	'm': c(0.442, 0, 0.833), 'n': c(0.442, 0, 0.556), 'o': c(0.448, 0.01, 0.5),
	'p': c(0.442, 0.194, 0.556), 'q': c(0.442, 0.194, 0.528), 'r': c(0.442, 0, 0.392),
	's': c(0.448, 0.011, 0.394), 't': c(0.615, 0.01, 0.389), 'u': c(0.442, 0.011, 0.556),
	'v': c(0.431, 0.011, 0.528), 'w': c(0.431, 0.011, 0.722), 'x': c(0.431, 0, 0.528),
	'y': c(0.431, 0.204, 0.528), 'z': c(0.431, 0, 0.444),
}

// italicChars 是 cmmi10 的数学斜体。
var italicChars = map[rune]fd.CharMetrics{
	'A': c(0.716, 0, 0.75, 0, 0.139), 'B': c(0.683, 0, 0.759, 0, 0.083),
	'C': c(0.705, 0.022, 0.715, 0.045, 0.083), 'D': c(0.683, 0, 0.828, 0, 0.056),
	'E': c(0.68, 0, 0.738, 0.026, 0.083), 'F': c(0.68, 0, 0.643, 0.106, 0.083),
	'G': c(0.705, 0.022, 0.786, 0, 0.083), 'H': c(0.683, 0, 0.831, 0.057, 0.056),
	'I': c(0.683, 0, 0.44, 0.064, 0.111), 'J': c(0.683, 0.022, 0.555, 0.078, 0.167),
	'K': c(0.683, 0, 0.849, 0.04, 0.056), 'L': c(0.683, 0, 0.681, 0, 0.028),
	'M': c(0.683, 0, 0.97, 0.081, 0.083), 'N': c(0.683, 0, 0.803, 0.085, 0.083),
	'O': c(0.704, 0.022, 0.763, 0, 0.083), 'P': c(0.683, 0, 0.642, 0.109, 0.083),
	'Q': c(0.704, 0.194, 0.791, 0, 0.083), 'R': c(0.683, 0.021, 0.759, 0, 0.083),
	'S': c(0.705, 0.022, 0.613, 0.032, 0.083), 'T': c(0.677, 0, 0.584, 0.12, 0.083),
	'U': c(0.683, 0.022, 0.683, 0.084, 0.028), 'V': c(0.683, 0.022, 0.583, 0.186),
	'W': c(0.683, 0.022, 0.944, 0.104), 'X': c(0.683, 0, 0.828, 0.024, 0.083),
	'Y': c(0.683, 0, 0.581, 0.182), 'Z': c(0.683, 0, 0.683, 0.04, 0.083),
	'a': c(0.441, 0.01, 0.529), 'b': c(0.694, 0.011, 0.429),
	'c': c(0.442, 0.011, 0.433, 0, 0.056), 'd': c(0.694, 0.01, 0.52, 0, 0.167),
	'e': c(0.442, 0.011, 0.466, 0, 0.056), 'f': c(0.705, 0.205, 0.49, 0.06, 0.167),
	'g': c(0.442, 0.205, 0.477, 0.014, 0.028), 'h': c(0.694, 0.011, 0.576),
	'i': c(0.661, 0.011, 0.345), 'j': c(0.661, 0.204, 0.412), 'k': c(0.694, 0.011, 0.521),
	'l': c(0.694, 0.011, 0.298, 0, 0.083), 'm': c(0.442, 0.011, 0.878),
	'n': c(0.442, 0.011, 0.6), 'o': c(0.441, 0.011, 0.485, 0, 0.056),
	'p': c(0.442, 0.194, 0.503, 0, 0.083), 'q': c(0.442, 0.194, 0.446, 0.014, 0.083),
	'r': c(0.442, 0.011, 0.451, 0.028, 0.056), 's': c(0.442, 0.01, 0.469, 0, 0.056),
	't': c(0.626, 0.011, 0.361, 0, 0.083), 'u': c(0.442, 0.011, 0.572, 0, 0.028),
	'v': c(0.443, 0.011, 0.485, 0, 0.028), 'w': c(0.443, 0.011, 0.716, 0, 0.083),
	'x': c(0.442, 0.011, 0.572, 0, 0.028), 'y': c(0.442, 0.205, 0.49, 0, 0.056),
	'z': c(0.442, 0.011, 0.465, 0, 0.056),
	'α': c(0.442, 0.011, 0.64, 0, 0.028), 'β': c(0.705, 0.194, 0.566, 0, 0.083),
	'γ': c(0.441, 0.216, 0.518, 0.025), 'δ': c(0.717, 0.01, 0.444, 0, 0.056),
	'ε': c(0.452, 0.022, 0.466, 0, 0.083), 'ζ': c(0.704, 0.204, 0.438, 0.033, 0.083),
	'η': c(0.442, 0.216, 0.497, 0, 0.056), 'θ': c(0.705, 0.01, 0.469, 0, 0.083),
	'ι': c(0.442, 0.01, 0.354, 0, 0.056), 'κ': c(0.442, 0.011, 0.576),
	'λ': c(0.694, 0.012, 0.583), 'μ': c(0.442, 0.216, 0.603, 0, 0.028),
	'ν': c(0.442, 0, 0.494, 0.036, 0.028), 'ξ': c(0.704, 0.205, 0.438, 0, 0.111),
	'π': c(0.431, 0.011, 0.57), 'ρ': c(0.442, 0.216, 0.517, 0, 0.083),
	'σ': c(0.431, 0.011, 0.571), 'τ': c(0.431, 0.013, 0.437, 0.08, 0.028),
	'υ': c(0.443, 0.01, 0.54, 0, 0.028), 'φ': c(0.442, 0.218, 0.654, 0, 0.083),
	'χ': c(0.442, 0.204, 0.626, 0, 0.056), 'ψ': c(0.694, 0.205, 0.651, 0, 0.111),
	'ω': c(0.443, 0.011, 0.622), 'ϑ': c(0.705, 0.011, 0.591, 0, 0.083),
	'ϕ': c(0.694, 0.205, 0.596, 0, 0.083), 'ϵ': c(0.431, 0.011, 0.406, 0, 0.056),
	'ı': c(0.441, 0.01, 0.307, 0, 0.028), 'ȷ': c(0.442, 0.204, 0.332, 0, 0.083),
}

// size1Chars 是第一级放大字形（smallop）。
var size1Chars = map[rune]fd.CharMetrics{
	'(': c(0.85, 0.349, 0.458), ')': c(0.85, 0.349, 0.458),
	'[': c(0.85, 0.349, 0.417), ']': c(0.85, 0.349, 0.417),
	'{': c(0.85, 0.349, 0.583), '}': c(0.85, 0.349, 0.583),
	'/': c(0.85, 0.349, 0.578), '\\': c(0.85, 0.349, 0.578),
	'⟨': c(0.85, 0.35, 0.472), '⟩': c(0.85, 0.35, 0.472),
	'⌈': c(0.85, 0.349, 0.472), '⌉': c(0.85, 0.349, 0.472),
	'⌊': c(0.85, 0.349, 0.472), '⌋': c(0.85, 0.349, 0.472),
	'√': c(0.85, 0.35, 1), '∑': c(0.75, 0.25, 1.056), '∏': c(0.75, 0.25, 0.944),
	'∐': c(0.75, 0.25, 0.944), '∫': c(0.805, 0.306, 0.472, 0.138), '∬': c(0.805, 0.306, 0.819, 0.138),
	'∮': c(0.805, 0.306, 0.472, 0.138), '⋀': c(0.75, 0.249, 0.833), '⋁': c(0.75, 0.249, 0.833),
	'⋂': c(0.75, 0.249, 0.833), '⋃': c(0.75, 0.249, 0.833), '⨁': c(0.75, 0.25, 1.111),
	'⨂': c(0.75, 0.25, 1.111), 'ˆ': c(0.744, -0.551, 0.556), '˜': c(0.722, -0.597, 0.556),
	'∣': c(0.627, 0.015, 0.333), '∥': c(0.627, 0.015, 0.556),
	'⎷': c(0.935, 0.885, 1.056), '⏐': c(0.602, 0, 1.056), '┌': c(0.61, 0, 1.056),
}

// size2Chars 是第二级放大字形（largeop）。
var size2Chars = map[rune]fd.CharMetrics{
	'(': c(1.15, 0.649, 0.597), ')': c(1.15, 0.649, 0.597),
	'[': c(1.15, 0.649, 0.472), ']': c(1.15, 0.649, 0.472),
	'{': c(1.15, 0.649, 0.667), '}': c(1.15, 0.649, 0.667),
	'/': c(1.15, 0.649, 0.811), '\\': c(1.15, 0.649, 0.811),
	'⟨': c(1.15, 0.649, 0.611), '⟩': c(1.15, 0.649, 0.611),
	'⌈': c(1.15, 0.649, 0.528), '⌉': c(1.15, 0.649, 0.528),
	'⌊': c(1.15, 0.649, 0.528), '⌋': c(1.15, 0.649, 0.528),
	'√': c(1.15, 0.65, 1), '∑': c(0.95, 0.45, 1.444), '∏': c(0.95, 0.45, 1.278),
	'∐': c(0.95, 0.45, 1.278), '∫': c(1.36, 0.862, 0.556, 0.388), '∬': c(1.36, 0.862, 1.084, 0.388),
	'∮': c(1.36, 0.862, 0.556, 0.388), '⋀': c(0.95, 0.45, 1.111), '⋁': c(0.95, 0.45, 1.111),
	'⋂': c(0.95, 0.45, 1.111), '⋃': c(0.95, 0.45, 1.111), '⨁': c(0.949, 0.449, 1.511),
	'⨂': c(0.949, 0.449, 1.511), 'ˆ': c(0.754, -0.552, 1), '˜': c(0.75, -0.611, 1),
}

// size3Chars 是第三级放大字形。
var size3Chars = map[rune]fd.CharMetrics{
	'(': c(1.45, 0.949, 0.736), ')': c(1.45, 0.949, 0.736),
	'[': c(1.45, 0.949, 0.528), ']': c(1.45, 0.949, 0.528),
	'{': c(1.45, 0.949, 0.75), '}': c(1.45, 0.949, 0.75),
	'/': c(1.45, 0.949, 1.044), '\\': c(1.45, 0.949, 1.044),
	'⟨': c(1.45, 0.95, 0.75), '⟩': c(1.45, 0.949, 0.75),
	'⌈': c(1.45, 0.949, 0.583), '⌉': c(1.45, 0.949, 0.583),
	'⌊': c(1.45, 0.949, 0.583), '⌋': c(1.45, 0.949, 0.583),
	'√': c(1.45, 0.95, 1), 'ˆ': c(0.772, -0.564, 1.444), '˜': c(0.749, -0.61, 1.444),
}

// size4Chars 是第四级放大字形以及拼装用的部件。
var size4Chars = map[rune]fd.CharMetrics{
	'(': c(1.75, 1.249, 0.792), ')': c(1.75, 1.249, 0.792),
	'[': c(1.75, 1.249, 0.583), ']': c(1.75, 1.249, 0.583),
	'{': c(1.75, 1.249, 0.806), '}': c(1.75, 1.249, 0.806),
	'/': c(1.75, 1.249, 1.278), '\\': c(1.75, 1.249, 1.278),
	'⟨': c(1.75, 1.248, 0.806), '⟩': c(1.75, 1.248, 0.806),
	'⌈': c(1.75, 1.249, 0.639), '⌉': c(1.75, 1.249, 0.639),
	'⌊': c(1.75, 1.249, 0.639), '⌋': c(1.75, 1.249, 0.639),
	'√': c(1.75, 1.25, 1), 'ˆ': c(0.845, -0.561, 1.889), '˜': c(0.823, -0.583, 1.889),
	'⎛': c(1.154, 0.655, 0.875), '⎜': c(0.609, 0.01, 0.875), '⎝': c(1.165, 0.644, 0.875),
	'⎞': c(1.154, 0.655, 0.875), '⎟': c(0.609, 0.01, 0.875), '⎠': c(1.165, 0.644, 0.875),
	'⎡': c(1.154, 0.645, 0.667), '⎢': c(0.602, 0.015, 0.667), '⎣': c(1.155, 0.644, 0.667),
	'⎤': c(1.154, 0.645, 0.667), '⎥': c(0.602, 0.015, 0.667), '⎦': c(1.155, 0.644, 0.667),
	'⎧': c(0.899, 0.01, 0.889), '⎨': c(1.16, 0.66, 0.889), '⎩': c(0.01, 0.899, 0.889),
	'⎫': c(0.899, 0.01, 0.889), '⎬': c(1.16, 0.66, 0.889), '⎭': c(0.01, 0.899, 0.889),
	'⎪': c(0.29, 0.015, 0.889), '⎸': c(0.6, 0.015, 0.667), '⎹': c(0.6, 0.015, 0.667),
}
