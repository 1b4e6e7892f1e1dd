package chat

import "strings"

// Verb 确认令牌动词
type Verb string

const (
	VerbConfirm Verb = "_confirm"
	VerbCancel  Verb = "_cancel"
)

// Command 按钮携带的确认令牌，格式为 "<verb> <pending id>"
type Command struct {
	Verb      Verb
	PendingID string
}

// EncodeCommand 编码令牌
func EncodeCommand(c Command) string {
	return string(c.Verb) + " " + c.PendingID
}

// ParseCommand 解析 EncodeCommand 的输出，动词未知或缺少 ID 时返回 false
func ParseCommand(s string) (Command, bool) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Command{}, false
	}
	verb := Verb(fields[0])
	if verb != VerbConfirm && verb != VerbCancel {
		return Command{}, false
	}
	return Command{Verb: verb, PendingID: fields[1]}, true
}

// IsCommand 首个词为确认动词的输入不经过意图识别
func IsCommand(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	verb := Verb(fields[0])
	return verb == VerbConfirm || verb == VerbCancel
}
