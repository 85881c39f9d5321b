// Package keyring stores secret environment values in the OS keyring so
// .env files only ever hold references to them.
package keyring

import (
	gokeyring "github.com/zalando/go-keyring"
)

// Service is the keyring service name under which all entries live.
const Service = "aidev"

// Ref renders the .env value that points at a stored secret.
func Ref(key string) string {
	return "keyring://" + Service + "/" + key
}

func SetSecret(key, value string) error {
	return gokeyring.Set(Service, key, value)
}

func GetSecret(key string) (string, error) {
	return gokeyring.Get(Service, key)
}

// DeleteSecret removes a stored secret. A missing entry is not an error.
func DeleteSecret(key string) error {
	err := gokeyring.Delete(Service, key)
	if err == gokeyring.ErrNotFound {
		return nil
	}
	return err
}

// Available reports whether the OS keyring backend works on this machine,
// probed by a read that only has to not fail structurally.
func Available() bool {
	_, err := gokeyring.Get(Service, "aidev-probe")
	return err == nil || err == gokeyring.ErrNotFound
}
