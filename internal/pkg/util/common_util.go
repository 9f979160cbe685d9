package util

import (
	"regexp"
	"strings"
)

var hashtagRegex = regexp.MustCompile(`#\w+`)

// ExtractHashtags 提取去重后的标签列表，统一转小写
func ExtractHashtags(content string) []string {
	matches := hashtagRegex.FindAllString(content, -1)

	tagSet := make(map[string]struct{})
	var tags []string

	for _, m := range matches {
		tag := strings.ToLower(m)
		if _, exists := tagSet[tag]; !exists {
			tagSet[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	return tags
}

// CountWords 按空白切分统计词数
func CountWords(content string) int {
	return len(strings.Fields(content))
}
