package fontdata

// Params 是 TeX 附录 G 使用的全局字体参数（单位 em）。
type Params struct {
	XHeight            float64 `json:"x_height"`
	Quad               float64 `json:"quad"`
	Num1               float64 `json:"num1"`
	Num2               float64 `json:"num2"`
	Num3               float64 `json:"num3"`
	Denom1             float64 `json:"denom1"`
	Denom2             float64 `json:"denom2"`
	Sup1               float64 `json:"sup1"`
	Sup2               float64 `json:"sup2"`
	Sup3               float64 `json:"sup3"`
	Sub1               float64 `json:"sub1"`
	Sub2               float64 `json:"sub2"`
	SupDrop            float64 `json:"sup_drop"`
	SubDrop            float64 `json:"sub_drop"`
	Delim1             float64 `json:"delim1"`
	Delim2             float64 `json:"delim2"`
	AxisHeight         float64 `json:"axis_height"`
	RuleThickness      float64 `json:"rule_thickness"`
	BigOpSpacing1      float64 `json:"big_op_spacing1"`
	BigOpSpacing2      float64 `json:"big_op_spacing2"`
	BigOpSpacing3      float64 `json:"big_op_spacing3"`
	BigOpSpacing4      float64 `json:"big_op_spacing4"`
	BigOpSpacing5      float64 `json:"big_op_spacing5"`
	SurdHeight         float64 `json:"surd_height"`
	ScriptSpace        float64 `json:"scriptspace"`
	NullDelimiterSpace float64 `json:"nulldelimiterspace"`
	MinRuleThickness   float64 `json:"min_rule_thickness"`
}

// TeXParams 返回 Computer Modern 的参数（与常见 TeX 数学排版实现一致）。
func TeXParams() Params {
	return Params{
		XHeight:            0.442,
		Quad:               1,
		Num1:               0.676,
		Num2:               0.394,
		Num3:               0.444,
		Denom1:             0.686,
		Denom2:             0.345,
		Sup1:               0.413,
		Sup2:               0.363,
		Sup3:               0.289,
		Sub1:               0.15,
		Sub2:               0.247,
		SupDrop:            0.386,
		SubDrop:            0.05,
		Delim1:             2.39,
		Delim2:             1.0,
		AxisHeight:         0.25,
		RuleThickness:      0.06,
		BigOpSpacing1:      0.111,
		BigOpSpacing2:      0.167,
		BigOpSpacing3:      0.2,
		BigOpSpacing4:      0.6,
		BigOpSpacing5:      0.1,
		SurdHeight:         0.075,
		ScriptSpace:        0.05,
		NullDelimiterSpace: 0.12,
		MinRuleThickness:   1.25,
	}
}
