// internal/answer/templates.go
package answer

// Fixed reply texts shown to users.
const (
	Greeting            = "您好，我是小勇医药智能助理，希望可以帮到您。如果没答上来，可联系https://liuhuanyong.github.io/。祝您身体棒棒！"
	DiseaseUnrecognized = "抱歉，我没有识别出您询问的疾病名称。"
	RecordNotFound      = "抱歉，我没有找到相关信息。"
	Unsupported         = "抱歉，我暂时无法回答这个问题。"
)

const (
	symptomTemplate      = "%s的症状包括：%s"
	symptomEmptyTemplate = "抱歉，我没有找到%s的症状信息。"

	causeTemplate      = "%s可能的成因有：%s"
	causeEmptyTemplate = "抱歉，我没有找到%s的病因信息。"

	cureHeaderTemplate   = "%s的治疗信息："
	cureWayTemplate      = "治疗方式：%s"
	cureLasttimeTemplate = "治疗周期：%s"
	curedProbTemplate    = "治愈概率：%s"
	cureEmptyTemplate    = "抱歉，我没有找到%s的治疗信息。"

	descTemplate      = "%s，熟悉一下：%s"
	descEmptyTemplate = "抱歉，我没有找到%s的详细描述。"

	listSeparator = "；"
	ellipsis      = "..."
	maxSymptoms   = 10
	maxCauseRunes = 200
	maxDescRunes  = 300
)
