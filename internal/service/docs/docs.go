// Package docs 注册 eccd 的 OpenAPI 文档, 由 /swagger 路由提供
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/v1/curves": {
			"get": {
				"tags": [
					"keys"
				],
				"summary": "List supported curves",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/service.CurveInfo"
						}
					}
				}
			}
		},
		"/v1/service/key": {
			"get": {
				"tags": [
					"keys"
				],
				"summary": "Service public key",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/service.ServiceKeyResponse"
						}
					}
				}
			}
		},
		"/v1/keys": {
			"post": {
				"tags": [
					"keys"
				],
				"summary": "Generate a key pair",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/service.KeyResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/http.Response-any"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.KeyRequest"
						}
					}
				]
			}
		},
		"/v1/keys/compress": {
			"post": {
				"tags": [
					"keys"
				],
				"summary": "Compress a public key",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/service.PublicKeyResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/http.Response-any"
						}
					},
					"422": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/http.Response-any"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.PublicKeyRequest"
						}
					}
				]
			}
		},
		"/v1/keys/decompress": {
			"post": {
				"tags": [
					"keys"
				],
				"summary": "Decompress a public key",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/service.PublicKeyResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/http.Response-any"
						}
					},
					"422": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/http.Response-any"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.PublicKeyRequest"
						}
					}
				]
			}
		},
		"/v1/keys/detect": {
			"post": {
				"tags": [
					"keys"
				],
				"summary": "Detect the curve of a key",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/service.DetectResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/http.Response-any"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.DetectRequest"
						}
					}
				]
			}
		},
		"/v1/keys/qrcode": {
			"post": {
				"tags": [
					"keys"
				],
				"summary": "Render a public key as a QR code",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/service.QRCodeResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/http.Response-any"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.QRCodeRequest"
						}
					}
				]
			}
		},
		"/v1/ecdh": {
			"post": {
				"tags": [
					"ecc"
				],
				"summary": "Compute an ECDH shared secret",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/service.ECDHResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/http.Response-any"
						}
					},
					"422": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/http.Response-any"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.ECDHRequest"
						}
					}
				]
			}
		},
		"/v1/sign": {
			"post": {
				"tags": [
					"ecc"
				],
				"summary": "Sign a digest with ECDSA",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/service.SignResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/http.Response-any"
						}
					},
					"422": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/http.Response-any"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.SignRequest"
						}
					}
				]
			}
		},
		"/v1/verify": {
			"post": {
				"tags": [
					"ecc"
				],
				"summary": "Verify an ECDSA signature",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/service.VerifyResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/http.Response-any"
						}
					},
					"422": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/http.Response-any"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.VerifyRequest"
						}
					}
				]
			}
		},
		"/v1/verify/batch": {
			"post": {
				"tags": [
					"ecc"
				],
				"summary": "Verify many ECDSA signatures",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/service.BatchVerifyResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/http.Response-any"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.BatchVerifyRequest"
						}
					}
				]
			}
		},
		"/v1/ecies/encrypt": {
			"post": {
				"tags": [
					"ecies"
				],
				"summary": "Encrypt with ECIES",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/service.EncryptResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/http.Response-any"
						}
					},
					"422": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/http.Response-any"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.EncryptRequest"
						}
					}
				]
			}
		},
		"/v1/ecies/decrypt": {
			"post": {
				"tags": [
					"ecies"
				],
				"summary": "Decrypt with the service key",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/service.DecryptResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/http.Response-any"
						}
					},
					"422": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/http.Response-any"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.DecryptRequest"
						}
					}
				]
			}
		}
	},
	"definitions": {
		"http.Response-any": {
			"type": "object",
			"properties": {
				"code": {
					"type": "integer"
				},
				"reason": {
					"type": "string"
				},
				"msg": {
					"type": "string"
				},
				"data": {},
				"metadata": {
					"type": "object",
					"additionalProperties": {
						"type": "string"
					}
				}
			}
		},
		"service.CurveInfo": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"bits": {
					"type": "integer"
				},
				"private_key_length": {
					"type": "integer"
				},
				"compressed_length": {
					"type": "integer"
				},
				"uncompressed_length": {
					"type": "integer"
				},
				"signature_length": {
					"type": "integer"
				}
			}
		},
		"service.ServiceKeyResponse": {
			"type": "object",
			"properties": {
				"curve": {
					"type": "string"
				},
				"bits": {
					"type": "integer"
				},
				"compressed": {
					"type": "boolean"
				},
				"public_key": {
					"type": "string",
					"format": "base64"
				},
				"pem": {
					"type": "string"
				}
			}
		},
		"service.KeyRequest": {
			"type": "object",
			"properties": {
				"curve": {
					"type": "string"
				},
				"compressed": {
					"type": "boolean"
				}
			}
		},
		"service.KeyResponse": {
			"type": "object",
			"properties": {
				"curve": {
					"type": "string"
				},
				"bits": {
					"type": "integer"
				},
				"private_key": {
					"type": "string",
					"format": "base64"
				},
				"public_key": {
					"type": "string",
					"format": "base64"
				}
			}
		},
		"service.PublicKeyRequest": {
			"type": "object",
			"properties": {
				"public_key": {
					"type": "string",
					"format": "base64"
				}
			},
			"required": [
				"public_key"
			]
		},
		"service.PublicKeyResponse": {
			"type": "object",
			"properties": {
				"curve": {
					"type": "string"
				},
				"public_key": {
					"type": "string",
					"format": "base64"
				}
			}
		},
		"service.DetectRequest": {
			"type": "object",
			"properties": {
				"key": {
					"type": "string"
				}
			},
			"required": [
				"key"
			]
		},
		"service.DetectResponse": {
			"type": "object",
			"properties": {
				"curve": {
					"type": "string"
				},
				"bits": {
					"type": "integer"
				},
				"public": {
					"type": "boolean"
				}
			}
		},
		"service.QRCodeRequest": {
			"type": "object",
			"properties": {
				"public_key": {
					"type": "string",
					"format": "base64"
				},
				"size": {
					"type": "integer"
				},
				"level": {
					"type": "string"
				}
			},
			"required": [
				"public_key"
			]
		},
		"service.QRCodeResponse": {
			"type": "object",
			"properties": {
				"content": {
					"type": "string"
				},
				"png": {
					"type": "string",
					"format": "base64"
				}
			}
		},
		"service.ECDHRequest": {
			"type": "object",
			"properties": {
				"curve": {
					"type": "string"
				},
				"private_key": {
					"type": "string",
					"format": "base64"
				},
				"public_key": {
					"type": "string",
					"format": "base64"
				}
			},
			"required": [
				"private_key",
				"public_key"
			]
		},
		"service.ECDHResponse": {
			"type": "object",
			"properties": {
				"curve": {
					"type": "string"
				},
				"shared_secret": {
					"type": "string",
					"format": "base64"
				}
			}
		},
		"service.SignRequest": {
			"type": "object",
			"properties": {
				"curve": {
					"type": "string"
				},
				"private_key": {
					"type": "string",
					"format": "base64"
				},
				"hash": {
					"type": "string",
					"format": "base64"
				},
				"message": {
					"type": "string",
					"format": "base64"
				},
				"nonce": {
					"type": "string"
				}
			},
			"required": [
				"private_key"
			]
		},
		"service.SignResponse": {
			"type": "object",
			"properties": {
				"curve": {
					"type": "string"
				},
				"hash": {
					"type": "string",
					"format": "base64"
				},
				"signature": {
					"type": "string",
					"format": "base64"
				}
			}
		},
		"service.VerifyRequest": {
			"type": "object",
			"properties": {
				"public_key": {
					"type": "string",
					"format": "base64"
				},
				"hash": {
					"type": "string",
					"format": "base64"
				},
				"message": {
					"type": "string",
					"format": "base64"
				},
				"signature": {
					"type": "string",
					"format": "base64"
				}
			},
			"required": [
				"public_key",
				"signature"
			]
		},
		"service.VerifyResponse": {
			"type": "object",
			"properties": {
				"curve": {
					"type": "string"
				},
				"valid": {
					"type": "boolean"
				}
			}
		},
		"service.BatchVerifyRequest": {
			"type": "object",
			"properties": {
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/service.VerifyRequest"
					}
				}
			},
			"required": [
				"items"
			]
		},
		"service.BatchVerifyResult": {
			"type": "object",
			"properties": {
				"valid": {
					"type": "boolean"
				},
				"reason": {
					"type": "string"
				},
				"error": {
					"type": "string"
				}
			}
		},
		"service.BatchVerifyResponse": {
			"type": "object",
			"properties": {
				"total": {
					"type": "integer"
				},
				"valid": {
					"type": "integer"
				},
				"results": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/service.BatchVerifyResult"
					}
				}
			}
		},
		"service.EncryptRequest": {
			"type": "object",
			"properties": {
				"public_key": {
					"type": "string",
					"format": "base64"
				},
				"plaintext": {
					"type": "string",
					"format": "base64"
				}
			},
			"required": [
				"plaintext"
			]
		},
		"service.EncryptResponse": {
			"type": "object",
			"properties": {
				"curve": {
					"type": "string"
				},
				"ciphertext": {
					"type": "string",
					"format": "base64"
				}
			}
		},
		"service.DecryptRequest": {
			"type": "object",
			"properties": {
				"ciphertext": {
					"type": "string",
					"format": "base64"
				}
			},
			"required": [
				"ciphertext"
			]
		},
		"service.DecryptResponse": {
			"type": "object",
			"properties": {
				"plaintext": {
					"type": "string",
					"format": "base64"
				}
			}
		}
	}
}`

// SwaggerInfo 文档元信息, 可在启动时修改 Host 等字段
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "eccd API",
	Description:      "Multi-curve ECC service: keys, ECDH, ECDSA and ECIES over secp128r1, secp192r1, secp256r1 and secp384r1.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
