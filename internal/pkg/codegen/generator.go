// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package codegen

import (
	"crypto/rand"
)

// DefaultAlphabet 激活码字符集
const DefaultAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// DefaultLength 激活码固定长度
const DefaultLength = 8

// Generator 生成指定长度的随机码。
// 它本身不保证全局唯一，唯一性由调用方借助存储层的唯一约束来保证。
type Generator struct {
	alphabet string
	length   int
}

func NewGenerator() *Generator {
	return NewGeneratorWith(DefaultAlphabet, DefaultLength)
}

func NewGeneratorWith(alphabet string, length int) *Generator {
	// 采样按单字节映射，字符集超过 256 无法表达
	if len(alphabet) == 0 || len(alphabet) > 256 {
		alphabet = DefaultAlphabet
	}
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{
		alphabet: alphabet,
		length:   length,
	}
}

// Generate 生成一个随机码。生成本身是纯操作，永远成功。
func (g *Generator) Generate() string {
	res := make([]byte, 0, g.length)
	buf := make([]byte, g.length)
	for len(res) < g.length {
		// rand.Read 在所有受支持的平台上不会返回错误
		_, _ = rand.Read(buf)
		for _, b := range buf {
			idx, ok := pickIndex(b, len(g.alphabet))
			if !ok {
				continue
			}
			res = append(res, g.alphabet[idx])
			if len(res) == g.length {
				break
			}
		}
	}
	return string(res)
}

// pickIndex 把一个随机字节映射到字符集下标。
// 拒绝落在 256 对 n 取整倍数之外的字节，保证各字符等概率出现。
func pickIndex(b byte, n int) (int, bool) {
	limit := 256 - 256%n
	if int(b) >= limit {
		return 0, false
	}
	return int(b) % n, true
}
