package wallet

import (
	"crypto/rand"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Generator 模拟钱包：生成地址与交易哈希，不与任何链交互
type Generator interface {
	NewAddress() (string, error)
	NewTxHash(payload ...[]byte) (string, error)
}

// RandomGenerator 基于随机私钥的地址生成器
type RandomGenerator struct{}

// NewRandomGenerator 创建随机生成器
func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

// NewAddress 生成新的 secp256k1 私钥并返回其 0x 前缀地址（EIP-55 校验和格式）
func (g *RandomGenerator) NewAddress() (string, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("generate wallet key: %w", err)
	}
	return crypto.PubkeyToAddress(key.PublicKey).Hex(), nil
}

// NewTxHash 生成 32 字节交易哈希：keccak256(随机盐 || payload...)
func (g *RandomGenerator) NewTxHash(payload ...[]byte) (string, error) {
	salt := make([]byte, common.HashLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate tx salt: %w", err)
	}
	return crypto.Keccak256Hash(append([][]byte{salt}, payload...)...).Hex(), nil
}

// IsAddress 校验 0x 前缀的 20 字节十六进制地址
func IsAddress(s string) bool {
	return len(s) == 2+2*common.AddressLength && common.IsHexAddress(s)
}

// IsTxHash 校验 0x 前缀的 32 字节十六进制哈希
func IsTxHash(s string) bool {
	b, err := hexutil.Decode(s)
	return err == nil && len(b) == common.HashLength
}
