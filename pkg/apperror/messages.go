package apperror

import (
	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.English,
	language.SimplifiedChinese,
}

var matcher = language.NewMatcher(supported)

// Language picks the best supported language for an Accept-Language header.
func Language(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)

	if err != nil || len(tags) == 0 {
		return language.English
	}

	_, index, _ := matcher.Match(tags...)

	return supported[index]
}

type message struct {
	en string
	zh string
}

var messages = map[Category]message{
	CategoryBadRequest:   {"The request is invalid.", "请求无效。"},
	CategoryUnauthorized: {"Authentication is required.", "需要身份验证。"},
	CategoryNotFound:     {"The session was not found or has expired.", "会话不存在或已过期。"},

	CategoryFileTooLarge:     {"The file must not exceed 10MB.", "文件大小不能超过10MB。"},
	CategoryUnsupportedType:  {"Unsupported file type. Please upload a PDF, TXT or Markdown file.", "不支持的文件类型，请上传PDF、TXT或Markdown文件。"},
	CategoryExtractionFailed: {"The document could not be read.", "文档解析失败。"},
	CategoryDecodeFailed:     {"The text file is not valid UTF-8.", "文本文件编码无效，请使用UTF-8编码。"},
	CategoryNoText:           {"No text could be extracted from the document.", "无法从文档中提取文本。"},

	CategoryEmptyText:        {"The text must not be empty.", "文本内容不能为空。"},
	CategoryTextTooLong:      {"The text exceeds the maximum length.", "文本内容超过最大长度。"},
	CategorySynthesisTooLong: {"The text is too long, please split it into shorter parts.", "文本内容过长，请分段处理。"},

	CategoryServiceUnavailable: {"The speech service is temporarily unavailable, please retry later.", "语音合成服务暂时不可用，请稍后重试。"},
	CategoryNetwork:            {"The speech service could not be reached, please retry later.", "网络连接失败，请稍后重试。"},
	CategoryEmptyAudio:         {"The speech service returned no audio, please retry later.", "生成的音频文件为空，请稍后重试。"},
	CategorySynthesisFailed:    {"Speech generation failed.", "语音生成失败。"},

	CategoryInvalidStep: {"This action is not available at the current step.", "当前步骤不允许此操作。"},
	CategoryGenerating:  {"Audio is already being generated.", "音频正在生成中。"},

	CategoryInternal: {"An unexpected error occurred.", "发生未知错误。"},
}

func (e *Error) Message(tag language.Tag) string {
	m, ok := messages[e.Category]

	if !ok {
		m = messages[CategoryInternal]
	}

	if base, _ := tag.Base(); base.String() == "zh" {
		return m.zh
	}

	return m.en
}
