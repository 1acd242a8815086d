package voice

type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
)

type Voice struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	Description string `json:"description,omitempty" yaml:"description"`

	Gender   Gender `json:"gender,omitempty" yaml:"gender"`
	Language string `json:"language,omitempty" yaml:"language"`

	// Vendor is the identifier the synthesis vendor expects, which differs from ID.
	Vendor string `json:"-" yaml:"vendor"`
}

const DefaultVoiceID = "1"

var DefaultVoices = []Voice{
	{ID: "1", Name: "小玲", Description: "甜美女声", Gender: GenderFemale, Language: "zh-CN", Vendor: "zhilingf"},
	{ID: "2", Name: "小军", Description: "正式男声", Gender: GenderMale, Language: "zh-CN", Vendor: "xijunm"},
	{ID: "3", Name: "小静", Description: "甜美女声", Gender: GenderFemale, Language: "zh-CN", Vendor: "xjingf"},
	{ID: "4", Name: "考拉", Description: "标准男声", Gender: GenderMale, Language: "zh-CN", Vendor: "kaolam"},
	{ID: "5", Name: "小美", Description: "客服女声", Gender: GenderFemale, Language: "zh-CN", Vendor: "juan1f"},
	{ID: "6", Name: "秋木", Description: "活力男声", Gender: GenderMale, Language: "zh-CN", Vendor: "qiumum"},
	{ID: "7", Name: "婷婷", Description: "营销女声", Gender: GenderFemale, Language: "zh-CN", Vendor: "xmguof"},
	{ID: "8", Name: "小蜜", Description: "营销女声", Gender: GenderFemale, Language: "zh-CN", Vendor: "xmamif"},
}

type Config struct {
	VoiceID string `json:"voiceId"`

	Speed  int `json:"speed"`
	Volume int `json:"volume"`
}

const (
	DefaultSpeed  = 5
	DefaultVolume = 5
)

func DefaultConfig() Config {
	return Config{
		VoiceID: DefaultVoiceID,

		Speed:  DefaultSpeed,
		Volume: DefaultVolume,
	}
}

// PreviewText is spoken when a user samples a voice.
const PreviewText = "这是一个语音预览示例。Hello, this is a voice preview sample."
