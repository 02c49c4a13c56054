package models

// Dataset ข้อมูลชุดหนึ่งของกราฟ (รูปแบบเดียวกับที่ chart ฝั่ง frontend ใช้)
// BackgroundColor เป็น palette ([]string) สำหรับ bar/doughnut
// หรือสีเดียว (string) สำหรับ line
type Dataset struct {
	Label           string      `json:"label"`
	Data            []int       `json:"data"`
	BackgroundColor interface{} `json:"backgroundColor,omitempty"`
	BorderColor     string      `json:"borderColor,omitempty"`
}

type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Statistics สถิติของคำถามที่คำตอบเป็นตัวเลขล้วน
type Statistics struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// QuestionAnalytics ผลวิเคราะห์ของคำถามเดียว
type QuestionAnalytics struct {
	QuestionID     string      `json:"questionId"`
	QuestionLabel  string      `json:"questionLabel"`
	QuestionType   string      `json:"questionType"`
	TotalResponses int         `json:"totalResponses"`
	ChartType      string      `json:"chartType"`
	ChartData      ChartData   `json:"chartData"`
	IsNumeric      *bool       `json:"isNumeric,omitempty"`
	Statistics     *Statistics `json:"statistics,omitempty"`
	Note           string      `json:"note,omitempty"`
}

// AnalyticsResult ผลวิเคราะห์รวมของทุนหนึ่งทุน
type AnalyticsResult struct {
	TotalStudents      int                 `json:"totalStudents"`
	CompletedStudents  int                 `json:"completedStudents"`
	IncompleteStudents int                 `json:"incompleteStudents"`
	Questions          []QuestionAnalytics `json:"questions"`
}
