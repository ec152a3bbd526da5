package utils

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func PrettyJson(in any) string {
	var buffer []byte
	var err error

	if raw, ok := in.([]byte); ok {
		var decoded any
		if err = json.Unmarshal(raw, &decoded); err != nil {
			return string(raw)
		}
		in = decoded
	}

	buffer, err = json.MarshalIndent(in, "", "\t")
	if err != nil {
		logrus.WithError(err).Warn("Erro ao formatar JSON")
		return ""
	}

	return string(buffer)
}
