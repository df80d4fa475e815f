// Package testkeys holds a fixed PASETO v4 key pair for tests and local development.
// Never deploy with these keys.
package testkeys

import (
	"encoding/base64"
	"fmt"

	"aidanwoods.dev/go-paseto"

	"github.com/salesflow/crm/config"
)

const (
	HardcodedPrivateKeyB64 = "UayDa4OMDpm3CvIT+iSC39iDyPlsui0pNQYDEZ1pbo1LsIrO4p/aVuCBWz6LiYvzj9pc+gn0gLwRd0CoHV+nxw=="
	HardcodedPublicKeyB64  = "S7CKzuKf2lbggVs+i4mL84/aXPoJ9IC8EXdAqB1fp8c="
)

// GetTestKeysBytes decodes the fixed key pair.
func GetTestKeysBytes() (privateKey, publicKey []byte, err error) {
	privateKey, err = base64.StdEncoding.DecodeString(HardcodedPrivateKeyB64)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode private key: %w", err)
	}
	publicKey, err = base64.StdEncoding.DecodeString(HardcodedPublicKeyB64)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode public key: %w", err)
	}
	return privateKey, publicKey, nil
}

// SecurityConfig fills a config.SecurityConfig with the fixed key pair, the same way
// config.Load does from PASETO_PRIVATE_KEY and PASETO_PUBLIC_KEY.
func SecurityConfig() (config.SecurityConfig, error) {
	privateBytes, publicBytes, err := GetTestKeysBytes()
	if err != nil {
		return config.SecurityConfig{}, err
	}
	privateKey, err := paseto.NewV4AsymmetricSecretKeyFromBytes(privateBytes)
	if err != nil {
		return config.SecurityConfig{}, fmt.Errorf("invalid private key: %w", err)
	}
	publicKey, err := paseto.NewV4AsymmetricPublicKeyFromBytes(publicBytes)
	if err != nil {
		return config.SecurityConfig{}, fmt.Errorf("invalid public key: %w", err)
	}
	return config.SecurityConfig{
		PasetoPrivateKey:      privateKey,
		PasetoPublicKey:       publicKey,
		PasetoPrivateKeyBytes: privateBytes,
		PasetoPublicKeyBytes:  publicBytes,
		SecretKey:             "test-secret-key-for-stored-credentials",
	}, nil
}
