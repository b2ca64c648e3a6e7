// Package jsml 把 JSON 文本解析成一棵只读的节点树，并提供按 key / 下标 / 点分路径导航的能力。
//
// 特点：
//   - 递归下降解析，字符串在私有缓冲区内原地解码，节点直接引用解码结果。
//   - \uXXXX 转义经由可替换的编码器写出（默认 UTF-8，也可选 Latin-1 / Windows-1252，或保留原文）。
//   - 导航永远不返回 nil：找不到时得到哨兵节点（kind 为 Null）；需要区分“不存在”和 null 时使用 Lookup 系列。
//   - 树由调用方通过 Free（或 Tree.Release）一次性释放，节点分配策略可替换。
//
// 路径说明：
//   - GetNested 的路径按 '.' 切分并逐段按 key 查找，空段被忽略；
//     数组元素没有 key，需要用 Item 访问。
//
// # 示例
//
// 基础用法：
//
//	t, err := jsml.ParseString(`{"name":"Alice","age":30}`)
//	if err != nil {
//	    return err
//	}
//	defer jsml.Free(t)
//	name, _ := t.Root().Get("name").Text()
//	age, _ := jsml.AnyAs[int64](t.Root(), "age")
//
// 自动下钻：
//
//	t, _ := jsml.ParseString(`{"data":{"id":123}}`)
//	id := jsml.GetData(t.Root(), "id") // 等价于 GetNested("data.id")
//
// 数组遍历：
//
//	jsml.EachArray(t.Root(), "tags", func(i int, v *jsml.Node) bool {
//	    s, _ := v.Text()
//	    fmt.Println(i, s)
//	    return true
//	})
//
// 诊断输出：
//
//	jsml.Print(t)
package jsml
