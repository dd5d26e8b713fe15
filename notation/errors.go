package notation

import "fmt"

// StructuralError 表示节点子节点数与类型声明不符。该错误对所在子树是致命的，
// 布局阶段会用错误框替换该子树，但不影响其它表达式。
type StructuralError struct {
	Path string
	Kind Kind
	Want int
	Got  int
}

func (e *StructuralError) Error() string {
	if e.Want < 0 {
		return fmt.Sprintf("notation: unknown kind %q at %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("notation: %s at %s expects %d children, got %d", e.Kind, e.Path, e.Want, e.Got)
}

// AttributeConfigError 表示显式属性值非法或越界，已用类型默认值代替。
type AttributeConfigError struct {
	Path  string
	Kind  Kind
	Attr  string
	Value string
	// Used 是实际采用的替代值。
	Used string
}

func (e *AttributeConfigError) Error() string {
	return fmt.Sprintf("notation: %s at %s has invalid %s=%q, using %q", e.Kind, e.Path, e.Attr, e.Value, e.Used)
}
