package docs

// swaggerUIPage is the static documentation page. It loads Swagger UI from
// the public CDN and points it at the service's own OpenAPI document; a small
// helper stores a JWT in localStorage so every try-it-out request carries the
// Authorization header.
const swaggerUIPage = `<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="utf-8">
  <title>API Compras - Documentación</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
  <style>
    body { margin: 0; }
    .token-panel {
      margin: 16px; padding: 12px 16px; background: #f8f9fa;
      border-left: 4px solid #007bff; border-radius: 4px;
      font-family: sans-serif;
    }
    .token-panel input { width: 60%; padding: 6px; }
    .token-panel button { padding: 6px 14px; margin-left: 8px; cursor: pointer; }
  </style>
</head>
<body>
  <div class="token-panel">
    <strong>Token JWT</strong>
    <p>Para probar los endpoints protegidos, establece tu token:</p>
    <input type="text" id="jwtToken" placeholder="Ingresa tu token JWT aquí...">
    <button onclick="setAuthToken(document.getElementById('jwtToken').value)">Establecer</button>
    <button onclick="clearAuthToken()">Limpiar</button>
  </div>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: '/docs/openapi.json',
        dom_id: '#swagger-ui',
        deepLinking: true,
        docExpansion: 'list',
        operationsSorter: 'alpha',
        tagsSorter: 'alpha',
        filter: true,
        requestInterceptor: function(request) {
          const token = localStorage.getItem('authToken');
          if (token) {
            request.headers['Authorization'] = 'Bearer ' + token;
          }
          return request;
        }
      });
    };
    window.setAuthToken = function(token) {
      localStorage.setItem('authToken', token);
      alert('Token de autorización establecido');
    };
    window.clearAuthToken = function() {
      localStorage.removeItem('authToken');
      alert('Token de autorización eliminado');
    };
  </script>
</body>
</html>
`
