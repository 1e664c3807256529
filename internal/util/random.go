package util

import (
	"crypto/rand"
	"math/big"
)

const randomCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomString 生成指定长度的随机字符串，用于文件名去重
func GenerateRandomString(length int) string {
	b := make([]byte, length)
	max := big.NewInt(int64(len(randomCharset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			b[i] = randomCharset[0]
			continue
		}
		b[i] = randomCharset[n.Int64()]
	}
	return string(b)
}

// GenerateNumericCode 生成指定位数的数字验证码
func GenerateNumericCode(digits int) string {
	b := make([]byte, digits)
	ten := big.NewInt(10)
	for i := range b {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			b[i] = '0'
			continue
		}
		b[i] = byte('0' + n.Int64())
	}
	return string(b)
}
