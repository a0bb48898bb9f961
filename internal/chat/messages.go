// internal/chat/messages.go
package chat

import "strings"

const (
	StartupMessage = "正在初始化医疗知识图谱问答系统..."
	ReadyMessage   = "系统初始化完成！"

	chatTitle = "医疗知识图谱问答系统"
	demoTitle = "医疗知识图谱问答系统演示"
	exitHint  = "输入 'quit' 或 'exit' 退出系统"
	farewell  = "感谢使用医疗知识图谱问答系统，再见！"

	userPrompt = "用户: "
)

var (
	banner    = strings.Repeat("=", 60)
	separator = strings.Repeat("-", 60)
)
