package recipe

import (
	"regexp"
	"strconv"
	"strings"
)

// quantityUnitPattern 比對行內第一個「數量＋單位」。
// 單位為封閉集合：日文的容量／計數單位加上常見英文縮寫。
var quantityUnitPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(カップ|cups?|大さじ|小さじ|ml|g|本|個|枚|杯|tbsp|tsp)`)

// ScaleIngredient 依人數比例換算食材行的份量。
// 只換算第一個出現的數量＋單位；比對不到或人數無效時原樣返回。
// 換算值取一位小數並去除尾端的 ".0"，數量與單位間的空白會被收斂。
func ScaleIngredient(line string, requestedServings, baseServings int) string {
	if requestedServings <= 0 || baseServings <= 0 {
		return line
	}

	loc := quantityUnitPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return line
	}

	quantity, err := strconv.ParseFloat(line[loc[2]:loc[3]], 64)
	if err != nil {
		return line
	}
	unit := line[loc[4]:loc[5]]

	scaled := quantity * float64(requestedServings) / float64(baseServings)
	formatted := strings.TrimSuffix(strconv.FormatFloat(scaled, 'f', 1, 64), ".0")

	return line[:loc[0]] + formatted + unit + line[loc[1]:]
}

// ScaleIngredients 依序換算整份食材清單
func ScaleIngredients(lines []string, requestedServings, baseServings int) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ScaleIngredient(line, requestedServings, baseServings)
	}
	return out
}
