package notation

// Freeze 完成构建阶段：为期望单个子节点却收到 0 个或多个子节点的类型
// 合成隐式 mrow，并建立父节点回指与下标。之后树结构不再改变。
// 重复调用是安全的。
func Freeze(root *Node) *Node {
	if root == nil || root.frozen {
		return root
	}
	freeze(root, nil, 0)
	return root
}

func freeze(n *Node, parent *Node, index int) {
	n.parent = parent
	n.index = index
	n.frozen = true
	if n.Attrs == nil {
		n.Attrs = map[string]string{}
	}
	if s := spec(n.Kind); s.inferRow && len(n.Children) != 1 {
		row := New(KindRow, nil, n.Children...)
		row.Inferred = true
		n.Children = []*Node{row}
	}
	for i, c := range n.Children {
		freeze(c, n, i)
	}
}
